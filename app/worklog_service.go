package app

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"ilmakase/internal/cache"
	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/google/uuid"
	mstats "github.com/montanaflynn/stats"
)

// WorklogService manages daily work-log records and derives logging
// statistics, cached per user and invalidated on writes.
type WorklogService struct {
	records  ports.RecordRepository
	cache    *cache.Tiered
	statsTTL time.Duration
}

// NewWorklogService creates the work-log record service
func NewWorklogService(records ports.RecordRepository, tiered *cache.Tiered, statsTTL time.Duration) *WorklogService {
	return &WorklogService{
		records:  records,
		cache:    tiered,
		statsTTL: statsTTL,
	}
}

// CreateRecord stores one day's work log and invalidates the user's
// cached statistics
func (s *WorklogService) CreateRecord(ctx context.Context, userID uuid.UUID, logDate time.Time, contents []string) (*models.Record, error) {
	cleaned := make([]string, 0, len(contents))
	for _, task := range contents {
		if task := strings.TrimSpace(task); task != "" {
			cleaned = append(cleaned, task)
		}
	}
	if len(cleaned) == 0 {
		return nil, errors.ValidationError("contents must contain at least one non-empty task")
	}

	record := &models.Record{
		ID:       uuid.New(),
		UserID:   userID,
		LogDate:  logDate,
		Contents: cleaned,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, statsCacheKey(userID))
	return record, nil
}

// ListRecords returns the user's records, newest first
func (s *WorklogService) ListRecords(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.records.ListByUser(ctx, userID, limit)
}

// Stats computes the user's logging statistics, served from cache when
// fresh
func (s *WorklogService) Stats(ctx context.Context, userID uuid.UUID) (*models.WorklogStats, error) {
	payload, err := s.cache.GetOrLoad(ctx, statsCacheKey(userID), s.statsTTL, func(ctx context.Context) ([]byte, error) {
		computed, err := s.computeStats(ctx, userID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(computed)
	})
	if err != nil {
		return nil, err
	}

	var result models.WorklogStats
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached stats")
	}
	return &result, nil
}

func (s *WorklogService) computeStats(ctx context.Context, userID uuid.UUID) (*models.WorklogStats, error) {
	records, err := s.records.ListByUser(ctx, userID, 1000)
	if err != nil {
		return nil, err
	}

	result := &models.WorklogStats{
		TotalRecords: len(records),
		GeneratedAt:  time.Now(),
	}
	if len(records) == 0 {
		return result, nil
	}

	tasksPerDay := make([]float64, 0, len(records))
	keywordCounts := make(map[string]int)
	for _, record := range records {
		tasksPerDay = append(tasksPerDay, float64(len(record.Contents)))
		if record.Analyzed() {
			result.AnalyzedRecords++
		}
		for _, keyword := range record.Keywords {
			keywordCounts[keyword]++
		}
	}

	if mean, err := mstats.Mean(tasksPerDay); err == nil {
		result.MeanTasksPerDay = mean
	}
	if median, err := mstats.Median(tasksPerDay); err == nil {
		result.MedianTasksPerDay = median
	}
	if stddev, err := mstats.StandardDeviation(tasksPerDay); err == nil {
		result.TasksStdDev = stddev
	}
	result.TopKeywords = topKeywords(keywordCounts, 10)

	return result, nil
}

func topKeywords(counts map[string]int, n int) []string {
	keywords := make([]string, 0, len(counts))
	for keyword := range counts {
		keywords = append(keywords, keyword)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}

func statsCacheKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}
