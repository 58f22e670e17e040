package ui

import (
	"net/http"

	"ilmakase/models"

	"github.com/gin-gonic/gin"
)

type suggestionRequest struct {
	Tasks          []models.TaskInput `json:"tasks"`
	ProjectContext string             `json:"projectContext"`
}

// handleSuggestions proposes next tasks; the provider's result is
// returned as-is.
func (s *Server) handleSuggestions(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.suggestionService.Suggest(c.Request.Context(), req.Tasks, req.ProjectContext)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
