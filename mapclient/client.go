// Package mapclient talks to the community map locations/comments API.
// Submissions are validated locally before any request is sent, so
// malformed input never costs a network round-trip.
package mapclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/openaidmap/community-map/maptools"
	"github.com/openaidmap/community-map/validation"
)

// ErrLocationNotFound is returned when the backend reports that the
// referenced location does not exist.
var ErrLocationNotFound = errors.New("location not found")

// APIError is a non-validation failure reported by the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client issues requests against the locations/comments endpoints. Requests
// are single attempts: there is no retry or backoff, and in-flight requests
// are not cancelled when UI state changes. Callers decide what to do with a
// response that arrives after its dialogue has closed.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LocationSubmission is the input to CreateLocation. Note, Agents and Hours
// are optional; nil fields are omitted from the request.
type LocationSubmission struct {
	Tool   maptools.ToolType
	Coords maptools.Coordinates
	Note   *string
	Agents *int
	Hours  *string
}

// CommentSubmission is the input to CreateComment. AuthorName is optional;
// the backend records anonymous comments when it is nil.
type CommentSubmission struct {
	LocationID int64
	Text       string
	AuthorName *string
}

// ListLocations returns every marker, newest first.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := c.do(ctx, http.MethodGet, "/locations", nil, http.StatusOK, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// CreateLocation validates the submission and posts it. On success the
// returned record carries the server-assigned id and timestamp.
func (c *Client) CreateLocation(ctx context.Context, sub LocationSubmission) (*Location, error) {
	coords := []float64{sub.Coords.Lng, sub.Coords.Lat}
	if err := validation.LocationSubmission(string(sub.Tool), coords); err != nil {
		return nil, err
	}

	body := map[string]any{
		"tool":        string(sub.Tool),
		"coordinates": coords,
	}
	if sub.Note != nil {
		body["note"] = *sub.Note
	}
	if sub.Agents != nil {
		body["agents"] = *sub.Agents
	}
	if sub.Hours != nil {
		body["hours"] = *sub.Hours
	}

	var location Location
	if err := c.do(ctx, http.MethodPost, "/locations", body, http.StatusCreated, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// ListComments returns the comments for a location in chronological order.
func (c *Client) ListComments(ctx context.Context, locationID int64) ([]Comment, error) {
	if err := validation.LocationID(locationID); err != nil {
		return nil, err
	}

	path := "/comments?location_id=" + url.QueryEscape(strconv.FormatInt(locationID, 10))
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment validates the submission and posts it. A missing location is
// reported as ErrLocationNotFound rather than a generic failure.
func (c *Client) CreateComment(ctx context.Context, sub CommentSubmission) (*Comment, error) {
	if err := validation.LocationID(sub.LocationID); err != nil {
		return nil, err
	}
	if err := validation.CommentText(sub.Text); err != nil {
		return nil, err
	}

	body := map[string]any{
		"location_id":  sub.LocationID,
		"comment_text": sub.Text,
	}
	if sub.AuthorName != nil {
		body["author_name"] = *sub.AuthorName
	}

	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/comments", body, http.StatusCreated, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode == wantStatus {
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrLocationNotFound
	}
	if resp.StatusCode != wantStatus {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
