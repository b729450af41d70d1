package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrLocationNotFound is reported when a comment references a location id
// that does not exist.
var ErrLocationNotFound = errors.New("location not found")

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Location represents a user-submitted marker record.
type Location struct {
	ID        int64     `json:"id"`
	ToolType  string    `json:"tool_type"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Note      *string   `json:"note,omitempty"`
	Agents    *int      `json:"agents,omitempty"`
	Hours     *string   `json:"hours,omitempty"`
	CityName  *string   `json:"city_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const listLocationsSQL = `
    SELECT id, tool_type, latitude, longitude, note, agents, hours, city_name, created_at
    FROM user_locations
    ORDER BY created_at DESC
`

// ListLocations returns all markers, newest first.
func (s *Store) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.pool.Query(ctx, listLocationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]Location, 0)
	for rows.Next() {
		var loc Location
		if err := rows.Scan(
			&loc.ID,
			&loc.ToolType,
			&loc.Latitude,
			&loc.Longitude,
			&loc.Note,
			&loc.Agents,
			&loc.Hours,
			&loc.CityName,
			&loc.CreatedAt,
		); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// InsertLocationParams holds the fields of a new marker. Coordinates are
// assumed validated by the handler.
type InsertLocationParams struct {
	ToolType  string
	Latitude  float64
	Longitude float64
	Note      *string
	Agents    *int
	Hours     *string
}

const insertLocationSQL = `
    SELECT id, tool_type, latitude, longitude, note, agents, hours, city_name, created_at
    FROM insert_location($1, $2, $3, $4, $5, $6)
`

// InsertLocation persists a marker via the insert_location function, which
// also resolves city_name from the imported city boundaries.
func (s *Store) InsertLocation(ctx context.Context, p InsertLocationParams) (*Location, error) {
	row := s.pool.QueryRow(ctx, insertLocationSQL,
		p.ToolType, p.Latitude, p.Longitude, p.Note, p.Agents, p.Hours)

	var loc Location
	if err := row.Scan(
		&loc.ID,
		&loc.ToolType,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Note,
		&loc.Agents,
		&loc.Hours,
		&loc.CityName,
		&loc.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &loc, nil
}

// Comment represents a comment attached to a location.
type Comment struct {
	ID          int64     `json:"id"`
	LocationID  int64     `json:"location_id"`
	CommentText string    `json:"comment_text"`
	AuthorName  *string   `json:"author_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const listCommentsSQL = `
    SELECT id, location_id, comment_text, author_name, created_at, updated_at
    FROM get_location_comments($1)
`

// ListComments returns the comments for a location in chronological order.
func (s *Store) ListComments(ctx context.Context, locationID int64) ([]Comment, error) {
	rows, err := s.pool.Query(ctx, listCommentsSQL, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(
			&cm.ID,
			&cm.LocationID,
			&cm.CommentText,
			&cm.AuthorName,
			&cm.CreatedAt,
			&cm.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

const insertCommentSQL = `
    SELECT id, location_id, comment_text, author_name, created_at, updated_at
    FROM add_comment_to_location($1, $2, $3)
`

// InsertComment persists a comment. A missing location is surfaced as
// ErrLocationNotFound so the handler can answer 404 instead of 500.
func (s *Store) InsertComment(ctx context.Context, locationID int64, text string, authorName *string) (*Comment, error) {
	row := s.pool.QueryRow(ctx, insertCommentSQL, locationID, text, authorName)

	var cm Comment
	if err := row.Scan(
		&cm.ID,
		&cm.LocationID,
		&cm.CommentText,
		&cm.AuthorName,
		&cm.CreatedAt,
		&cm.UpdatedAt,
	); err != nil {
		if isMissingLocation(err) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &cm, nil
}

// isMissingLocation matches both the exception raised by
// add_comment_to_location and a direct foreign-key violation.
func isMissingLocation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code == "23503" { // foreign_key_violation
		return true
	}
	return strings.Contains(pgErr.Message, "does not exist")
}
