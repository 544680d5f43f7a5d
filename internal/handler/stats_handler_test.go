package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecity-api/internal/dto"
	"ecity-api/internal/response"
)

func setupStatsRouter(svc *MockStatsService) *gin.Engine {
	h := NewStatsHandler(svc)
	r := gin.New()
	r.GET("/stats", h.GetStats)
	r.GET("/stats/categories", h.CategoryStats)
	r.GET("/stats/status", h.StatusStats)
	r.GET("/stats/trend", h.Trend)
	return r
}

func TestStatsHandler_GetStats(t *testing.T) {
	reporter := uuid.New()
	var gotReporter *uuid.UUID
	svc := &MockStatsService{
		GetStatsFunc: func(ctx context.Context, reporterID *uuid.UUID) (*dto.StatsResponse, error) {
			gotReporter = reporterID
			return &dto.StatsResponse{TotalIssues: 3, ResolvedIssues: 1, PendingIssues: 2}, nil
		},
	}
	r := setupStatsRouter(svc)

	w := doJSON(r, http.MethodGet, "/stats?userId="+reporter.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalIssues":3,"resolvedIssues":1,"pendingIssues":2}`, w.Body.String())
	require.NotNil(t, gotReporter)
	assert.Equal(t, reporter, *gotReporter)

	w = doJSON(r, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, gotReporter)

	w = doJSON(r, http.MethodGet, "/stats?userId=nobody", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"userId"}, decodeError(t, w).Fields)
}

func TestStatsHandler_Trend(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantDays   int
		wantStatus int
	}{
		{"default window", "", 7, http.StatusOK},
		{"thirty days", "?days=30", 30, http.StatusOK},
		{"not a number", "?days=week", 0, http.StatusBadRequest},
		{"rejected by service", "?days=14", 14, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDays := 0
			svc := &MockStatsService{
				TrendFunc: func(ctx context.Context, days int) ([]dto.TrendPoint, error) {
					gotDays = days
					if days != 7 && days != 30 {
						return nil, response.NewValidationError("Days must be 7 or 30", "days")
					}
					return make([]dto.TrendPoint, days), nil
				},
			}
			w := doJSON(setupStatsRouter(svc), http.MethodGet, "/stats/trend"+tt.query, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantDays, gotDays)
			if tt.wantStatus == http.StatusOK {
				var points []dto.TrendPoint
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &points))
				assert.Len(t, points, tt.wantDays)
			}
		})
	}
}

func TestStatsHandler_Groups(t *testing.T) {
	svc := &MockStatsService{
		CategoryStatsFunc: func(ctx context.Context) ([]dto.CategoryStat, error) {
			return []dto.CategoryStat{{Category: "water", Count: 2}}, nil
		},
		StatusStatsFunc: func(ctx context.Context) ([]dto.StatusStat, error) {
			return nil, errors.New("database is closed")
		},
	}
	r := setupStatsRouter(svc)

	w := doJSON(r, http.MethodGet, "/stats/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"category":"water","count":2}]`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/stats/status", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeError(t, w).Error)
}
