package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
	"ecity-api/internal/response"
)

const dayLayout = "2006-01-02"

// StatsService computes issue statistics on read. Nothing is cached.
type StatsService interface {
	GetStats(ctx context.Context, reporterID *uuid.UUID) (*dto.StatsResponse, error)
	CategoryStats(ctx context.Context) ([]dto.CategoryStat, error)
	StatusStats(ctx context.Context) ([]dto.StatusStat, error)
	Trend(ctx context.Context, days int) ([]dto.TrendPoint, error)
}

type statsServiceImpl struct {
	issueRepo repository.IssueRepository
	now       func() time.Time
}

func NewStatsService(issueRepo repository.IssueRepository) StatsService {
	return &statsServiceImpl{
		issueRepo: issueRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetStats returns total, resolved and pending counts, optionally for one
// reporter. Pending counts status "pending" only.
func (s *statsServiceImpl) GetStats(ctx context.Context, reporterID *uuid.UUID) (*dto.StatsResponse, error) {
	groups, err := s.issueRepo.CountByStatus(ctx, reporterID)
	if err != nil {
		return nil, internalError("Failed to compute stats", err)
	}

	stats := &dto.StatsResponse{}
	for _, g := range groups {
		stats.TotalIssues += g.Count
		switch domain.IssueStatus(g.Key) {
		case domain.IssueStatusResolved:
			stats.ResolvedIssues += g.Count
		case domain.IssueStatusPending:
			stats.PendingIssues += g.Count
		}
	}
	return stats, nil
}

// CategoryStats returns one entry per category, zero-filled, in enum order
func (s *statsServiceImpl) CategoryStats(ctx context.Context) ([]dto.CategoryStat, error) {
	groups, err := s.issueRepo.CountByCategory(ctx)
	if err != nil {
		return nil, internalError("Failed to compute category stats", err)
	}
	counts := groupMap(groups)

	result := make([]dto.CategoryStat, 0, len(domain.IssueCategories))
	for _, c := range domain.IssueCategories {
		result = append(result, dto.CategoryStat{Category: string(c), Count: counts[string(c)]})
		delete(counts, string(c))
	}
	for key, n := range counts {
		result = append(result, dto.CategoryStat{Category: key, Count: n})
	}
	return result, nil
}

// StatusStats returns one entry per status, zero-filled, in enum order
func (s *statsServiceImpl) StatusStats(ctx context.Context) ([]dto.StatusStat, error) {
	groups, err := s.issueRepo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, internalError("Failed to compute status stats", err)
	}
	counts := groupMap(groups)

	result := make([]dto.StatusStat, 0, len(domain.IssueStatuses))
	for _, st := range domain.IssueStatuses {
		result = append(result, dto.StatusStat{Status: string(st), Count: counts[string(st)]})
	}
	return result, nil
}

// Trend returns the number of issues created on each UTC day of the last
// days days, today included, oldest first. days must be 7 or 30.
func (s *statsServiceImpl) Trend(ctx context.Context, days int) ([]dto.TrendPoint, error) {
	if days != 7 && days != 30 {
		return nil, response.NewValidationError("Days must be 7 or 30", "days")
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))

	created, err := s.issueRepo.FindCreatedAtSince(ctx, start)
	if err != nil {
		return nil, internalError("Failed to compute trend", err)
	}

	buckets := make(map[string]int, days)
	for _, t := range created {
		buckets[t.UTC().Format(dayLayout)]++
	}

	points := make([]dto.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(dayLayout)
		points = append(points, dto.TrendPoint{Date: day, Count: buckets[day]})
	}
	return points, nil
}

func groupMap(groups []repository.GroupCount) map[string]int64 {
	m := make(map[string]int64, len(groups))
	for _, g := range groups {
		m[g.Key] += g.Count
	}
	return m
}
