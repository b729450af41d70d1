// Package validation holds the submission checks shared by the map client
// and the API handlers. Both sides run the same functions so the client
// pre-check and the server-boundary check cannot drift apart.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ValidTools is the closed set of tool values accepted over the wire.
var ValidTools = []string{"Ice sighting", "Homeless Shelter", "Food bank"}

// Error describes a rejected submission. Validation errors are raised before
// any network or database work happens.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func errf(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// IsError reports whether err originated from a validation check.
func IsError(err error) bool {
	var v *Error
	return errors.As(err, &v)
}

// Tool checks that the submitted tool is one of the known values.
func Tool(tool string) error {
	for _, v := range ValidTools {
		if tool == v {
			return nil
		}
	}
	return errf("invalid tool type. Must be one of: %s", strings.Join(ValidTools, ", "))
}

// Coordinates checks that a latitude/longitude pair is numeric and in range:
// latitude in [-90, 90], longitude in [-180, 180].
func Coordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return errf("invalid coordinates")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return errf("invalid coordinates")
	}
	return nil
}

// LocationSubmission checks a create-location request: tool and coordinate
// pair both present, coordinates in range, tool in the allowed set.
// Coordinates arrive in wire order, [longitude, latitude].
func LocationSubmission(tool string, coordinates []float64) error {
	if tool == "" || len(coordinates) != 2 {
		return errf("missing required fields: tool and coordinates")
	}
	if err := Coordinates(coordinates[1], coordinates[0]); err != nil {
		return err
	}
	return Tool(tool)
}

// LocationID checks that a comment's location reference is usable.
func LocationID(id int64) error {
	if id <= 0 {
		return errf("location_id must be a valid number")
	}
	return nil
}

// CommentText checks that a comment is present and non-empty after trimming.
func CommentText(text string) error {
	if text == "" {
		return errf("missing required fields: location_id and comment_text")
	}
	if strings.TrimSpace(text) == "" {
		return errf("comment text cannot be empty")
	}
	return nil
}
