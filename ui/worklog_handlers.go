package ui

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type createRecordRequest struct {
	LogDate  string   `json:"logDate"`
	Contents []string `json:"contents"`
}

// handleCreateRecord stores one day's work log
func (s *Server) handleCreateRecord(c *gin.Context) {
	user := CurrentUser(c)

	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	logDate := time.Now()
	if req.LogDate != "" {
		parsed, err := time.Parse("2006-01-02", req.LogDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "logDate must be YYYY-MM-DD"})
			return
		}
		logDate = parsed
	}

	record, err := s.worklogService.CreateRecord(c.Request.Context(), user.ID, logDate, req.Contents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// handleListRecords returns the user's work-log entries
func (s *Server) handleListRecords(c *gin.Context) {
	user := CurrentUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := s.worklogService.ListRecords(c.Request.Context(), user.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// handleStats returns the user's logging statistics
func (s *Server) handleStats(c *gin.Context) {
	user := CurrentUser(c)

	result, err := s.worklogService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
