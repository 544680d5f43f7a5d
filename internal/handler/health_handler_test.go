package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ready"`,
		},
		{
			name: "all healthy, nil check skipped",
			checks: map[string]Pinger{
				"database": func(ctx context.Context) error { return nil },
				"redis":    nil,
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ready"`,
		},
		{
			name: "database down",
			checks: map[string]Pinger{
				"database": func(ctx context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"failed":["database"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checks)
			r := gin.New()
			r.GET("/health", h.Health)
			r.GET("/ready", h.Ready)

			w := doJSON(r, http.MethodGet, "/health", nil)
			assert.Equal(t, http.StatusOK, w.Code)

			w = doJSON(r, http.MethodGet, "/ready", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}
