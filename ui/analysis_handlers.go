package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handlePatternAnalysis runs the batch pattern pipeline over the user's
// stored records. No request body: the batch is selected server-side.
func (s *Server) handlePatternAnalysis(c *gin.Context) {
	user := CurrentUser(c)

	analysis, err := s.analysisService.RunPatternAnalysis(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"message":  "pattern analysis complete",
	})
}

type dailyAnalysisRequest struct {
	WorkLogs string `json:"workLogs"`
}

// handleDailyAnalysis summarizes one day's work log, consuming one
// credit on the free plan.
func (s *Server) handleDailyAnalysis(c *gin.Context) {
	user := CurrentUser(c)

	var req dailyAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, creditsRemaining, err := s.dailyService.Analyze(c.Request.Context(), user.ID, req.WorkLogs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":         result,
		"creditsRemaining": creditsRemaining,
	})
}
