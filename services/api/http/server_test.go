package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaidmap/community-map/services/api/config"
	"github.com/openaidmap/community-map/services/api/db"
)

type stubStore struct {
	listLocations  func(ctx context.Context) ([]db.Location, error)
	insertLocation func(ctx context.Context, p db.InsertLocationParams) (*db.Location, error)
	listComments   func(ctx context.Context, locationID int64) ([]db.Comment, error)
	insertComment  func(ctx context.Context, locationID int64, text string, authorName *string) (*db.Comment, error)
}

func (s *stubStore) ListLocations(ctx context.Context) ([]db.Location, error) {
	return s.listLocations(ctx)
}

func (s *stubStore) InsertLocation(ctx context.Context, p db.InsertLocationParams) (*db.Location, error) {
	return s.insertLocation(ctx, p)
}

func (s *stubStore) ListComments(ctx context.Context, locationID int64) ([]db.Comment, error) {
	return s.listComments(ctx, locationID)
}

func (s *stubStore) InsertComment(ctx context.Context, locationID int64, text string, authorName *string) (*db.Comment, error) {
	return s.insertComment(ctx, locationID, text, authorName)
}

func doRequest(t *testing.T, store Store, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	srv := New(config.Config{Port: 8080}, store)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, &stubStore{}, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListLocations(t *testing.T) {
	note := "open late"
	store := &stubStore{
		listLocations: func(ctx context.Context) ([]db.Location, error) {
			return []db.Location{
				{ID: 2, ToolType: "Food bank", Latitude: 40.73, Longitude: -73.99, Note: &note, CreatedAt: time.Now()},
				{ID: 1, ToolType: "Ice sighting", Latitude: 41.88, Longitude: -87.63, CreatedAt: time.Now().Add(-time.Hour)},
			}, nil
		},
	}

	rec := doRequest(t, store, http.MethodGet, "/locations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	assert.Equal(t, float64(2), first["id"])
	assert.Equal(t, "Food bank", first["tool_type"])
}

func TestListLocationsStoreFailure(t *testing.T) {
	store := &stubStore{
		listLocations: func(ctx context.Context) ([]db.Location, error) {
			return nil, errors.New("connection refused")
		},
	}

	rec := doRequest(t, store, http.MethodGet, "/locations", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	// Internal causes stay server-side.
	assert.Equal(t, "failed to fetch locations", body["error"])
}

func TestCreateLocation(t *testing.T) {
	store := &stubStore{
		insertLocation: func(ctx context.Context, p db.InsertLocationParams) (*db.Location, error) {
			assert.Equal(t, "Food bank", p.ToolType)
			assert.InDelta(t, 40.73, p.Latitude, 1e-9)
			assert.InDelta(t, -73.99, p.Longitude, 1e-9)
			return &db.Location{
				ID: 11, ToolType: p.ToolType,
				Latitude: p.Latitude, Longitude: p.Longitude,
				CreatedAt: time.Now(),
			}, nil
		},
	}

	rec := doRequest(t, store, http.MethodPost, "/locations", map[string]any{
		"tool":        "Food bank",
		"coordinates": []float64{-73.99, 40.73},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Food bank", data["tool_type"])
	assert.Greater(t, data["id"].(float64), float64(0))
	assert.NotEmpty(t, data["created_at"])
}

func TestCreateLocationValidation(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			"missing_tool",
			map[string]any{"coordinates": []float64{-73.99, 40.73}},
			"missing required fields: tool and coordinates",
		},
		{
			"missing_coordinates",
			map[string]any{"tool": "Food bank"},
			"missing required fields: tool and coordinates",
		},
		{
			"short_coordinates",
			map[string]any{"tool": "Food bank", "coordinates": []float64{-73.99}},
			"missing required fields: tool and coordinates",
		},
		{
			"bad_latitude",
			map[string]any{"tool": "Food bank", "coordinates": []float64{-73.99, 140.73}},
			"invalid coordinates",
		},
		{
			"bad_longitude",
			map[string]any{"tool": "Food bank", "coordinates": []float64{-200, 40.73}},
			"invalid coordinates",
		},
		{
			"unknown_tool",
			map[string]any{"tool": "Soup kitchen", "coordinates": []float64{-73.99, 40.73}},
			"invalid tool type. Must be one of: Ice sighting, Homeless Shelter, Food bank",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{
				insertLocation: func(ctx context.Context, p db.InsertLocationParams) (*db.Location, error) {
					t.Error("store must not be reached on invalid input")
					return nil, nil
				},
			}

			rec := doRequest(t, store, http.MethodPost, "/locations", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.want, body["error"])
		})
	}
}

func TestListComments(t *testing.T) {
	author := "harper"
	store := &stubStore{
		listComments: func(ctx context.Context, locationID int64) ([]db.Comment, error) {
			assert.Equal(t, int64(17), locationID)
			return []db.Comment{
				{ID: 1, LocationID: 17, CommentText: "still here", AuthorName: &author, CreatedAt: time.Now(), UpdatedAt: time.Now()},
			}, nil
		},
	}

	rec := doRequest(t, store, http.MethodGet, "/comments?location_id=17", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "still here", data[0].(map[string]any)["comment_text"])
}

func TestListCommentsRequiresLocationID(t *testing.T) {
	rec := doRequest(t, &stubStore{}, http.MethodGet, "/comments", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "location_id parameter is required", decodeBody(t, rec)["error"])

	rec = doRequest(t, &stubStore{}, http.MethodGet, "/comments?location_id=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "location_id must be a valid number", decodeBody(t, rec)["error"])
}

func TestCreateComment(t *testing.T) {
	store := &stubStore{
		insertComment: func(ctx context.Context, locationID int64, text string, authorName *string) (*db.Comment, error) {
			anon := "Anonymous"
			return &db.Comment{
				ID: 3, LocationID: locationID, CommentText: text, AuthorName: &anon,
				CreatedAt: time.Now(), UpdatedAt: time.Now(),
			}, nil
		},
	}

	rec := doRequest(t, store, http.MethodPost, "/comments", map[string]any{
		"location_id":  17,
		"comment_text": "hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "hello", data["comment_text"])
	assert.Equal(t, "Anonymous", data["author_name"])
}

func TestCreateCommentValidation(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			"missing_location_id",
			map[string]any{"comment_text": "hello"},
			"missing required fields: location_id and comment_text",
		},
		{
			"missing_text",
			map[string]any{"location_id": 17},
			"missing required fields: location_id and comment_text",
		},
		{
			"whitespace_text",
			map[string]any{"location_id": 17, "comment_text": "   "},
			"comment text cannot be empty",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{
				insertComment: func(ctx context.Context, locationID int64, text string, authorName *string) (*db.Comment, error) {
					t.Error("store must not be reached on invalid input")
					return nil, nil
				},
			}

			rec := doRequest(t, store, http.MethodPost, "/comments", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, decodeBody(t, rec)["error"])
		})
	}
}

func TestCreateCommentLocationNotFound(t *testing.T) {
	store := &stubStore{
		insertComment: func(ctx context.Context, locationID int64, text string, authorName *string) (*db.Comment, error) {
			return nil, db.ErrLocationNotFound
		},
	}

	rec := doRequest(t, store, http.MethodPost, "/comments", map[string]any{
		"location_id":  999999,
		"comment_text": "hello",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "location not found", decodeBody(t, rec)["error"])
}

func TestCreateCommentStoreFailure(t *testing.T) {
	store := &stubStore{
		insertComment: func(ctx context.Context, locationID int64, text string, authorName *string) (*db.Comment, error) {
			return nil, errors.New("constraint violation")
		},
	}

	rec := doRequest(t, store, http.MethodPost, "/comments", map[string]any{
		"location_id":  17,
		"comment_text": "hello",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to create comment", decodeBody(t, rec)["error"])
}
