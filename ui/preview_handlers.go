package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type previewRequest struct {
	Contents []string `json:"contents"`
}

// handlePreview is the guest preview path: validated, AI-backed,
// nothing stored, no session needed.
func (s *Server) handlePreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.previewService.Preview(c.Request.Context(), req.Contents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preview": result.Items,
		"message": "preview generated",
	})
}
