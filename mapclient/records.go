package mapclient

import "time"

// Location is the canonical marker record returned by the API. Records are
// immutable from the client's perspective once created.
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

// Comment is a threaded annotation attached to a location.
type Comment struct {
	ID          int64     `json:"id"`
	LocationID  int64     `json:"location_id"`
	CommentText string    `json:"comment_text"`
	AuthorName  *string   `json:"author_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
