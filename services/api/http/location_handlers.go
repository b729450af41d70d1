package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openaidmap/community-map/services/api/db"
	"github.com/openaidmap/community-map/validation"
)

// createLocationRequest mirrors the POST /locations body. Coordinates arrive
// in wire order, [longitude, latitude].
type createLocationRequest struct {
	Tool        string    `json:"tool"`
	Coordinates []float64 `json:"coordinates"`
	Note        *string   `json:"note"`
	Agents      *int      `json:"agents"`
	Hours       *string   `json:"hours"`
}

func (s *Server) handleListLocations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		log.Printf("list locations: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch locations")
		return
	}

	respondData(c, http.StatusOK, locations)
}

func (s *Server) handleCreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Same checks the client runs before submitting; the server must not
	// trust the client.
	if err := validation.LocationSubmission(req.Tool, req.Coordinates); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	location, err := s.store.InsertLocation(ctx, db.InsertLocationParams{
		ToolType:  req.Tool,
		Latitude:  req.Coordinates[1],
		Longitude: req.Coordinates[0],
		Note:      req.Note,
		Agents:    req.Agents,
		Hours:     req.Hours,
	})
	if err != nil {
		log.Printf("create location: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to create location")
		return
	}

	respondData(c, http.StatusCreated, location)
}
