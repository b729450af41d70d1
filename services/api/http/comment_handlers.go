package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openaidmap/community-map/services/api/db"
	"github.com/openaidmap/community-map/validation"
)

type createCommentRequest struct {
	LocationID  int64   `json:"location_id"`
	CommentText string  `json:"comment_text"`
	AuthorName  *string `json:"author_name"`
}

func (s *Server) handleListComments(c *gin.Context) {
	idStr := c.Query("location_id")
	if idStr == "" {
		respondError(c, http.StatusBadRequest, "location_id parameter is required")
		return
	}

	locationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "location_id must be a valid number")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	comments, err := s.store.ListComments(ctx, locationID)
	if err != nil {
		log.Printf("list comments: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch comments")
		return
	}

	respondData(c, http.StatusOK, comments)
}

func (s *Server) handleCreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LocationID == 0 || req.CommentText == "" {
		respondError(c, http.StatusBadRequest, "missing required fields: location_id and comment_text")
		return
	}
	if err := validation.CommentText(req.CommentText); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	comment, err := s.store.InsertComment(ctx, req.LocationID, req.CommentText, req.AuthorName)
	if err != nil {
		if errors.Is(err, db.ErrLocationNotFound) {
			respondError(c, http.StatusNotFound, "location not found")
			return
		}
		log.Printf("create comment: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	respondData(c, http.StatusCreated, comment)
}
