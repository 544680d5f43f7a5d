package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecity-api/internal/response"
	"ecity-api/internal/service"
)

const defaultTrendDays = 7

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats godoc
// @Summary      Issue totals
// @Description  Total, resolved and pending counts, optionally for one reporter
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        userId query string false "Reporter ID (UUID)"
// @Success      200 {object} dto.StatsResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	var reporterID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendValidationError(c, http.StatusBadRequest, "User id must be a valid ID", []string{"userId"})
			return
		}
		reporterID = &id
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), reporterID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, stats)
}

// CategoryStats godoc
// @Summary      Issues per category
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CategoryStat
// @Router       /stats/categories [get]
func (h *StatsHandler) CategoryStats(c *gin.Context) {
	stats, err := h.statsService.CategoryStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, stats)
}

// StatusStats godoc
// @Summary      Issues per status
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.StatusStat
// @Router       /stats/status [get]
func (h *StatsHandler) StatusStats(c *gin.Context) {
	stats, err := h.statsService.StatusStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, stats)
}

// Trend godoc
// @Summary      Daily report counts
// @Description  One zero-filled UTC day per entry, oldest first
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "7 or 30 (default 7)"
// @Success      200 {array} dto.TrendPoint
// @Failure      400 {object} response.ErrorResponse
// @Router       /stats/trend [get]
func (h *StatsHandler) Trend(c *gin.Context) {
	days := defaultTrendDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.SendValidationError(c, http.StatusBadRequest, "Days must be 7 or 30", []string{"days"})
			return
		}
		days = n
	}

	points, err := h.statsService.Trend(c.Request.Context(), days)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, points)
}
