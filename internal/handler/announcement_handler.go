package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecity-api/internal/dto"
	"ecity-api/internal/response"
	"ecity-api/internal/service"
)

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// ListAnnouncements godoc
// @Summary      List announcements
// @Description  Newest first
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.AnnouncementResponse
// @Router       /announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	items, err := h.announcementService.ListAnnouncements(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, items)
}

// CreateAnnouncement godoc
// @Summary      Publish an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAnnouncementRequest true "Announcement"
// @Success      201 {object} dto.AnnouncementResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Router       /announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.announcementService.CreateAnnouncement(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, a)
}

// UpdateAnnouncement godoc
// @Summary      Edit an announcement
// @Description  Only the supplied fields change
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Announcement ID (UUID)"
// @Param        request body dto.UpdateAnnouncementRequest true "Fields to change"
// @Success      200 {object} dto.AnnouncementResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /announcements/{id} [put]
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := parseID(c, "id", "announcement")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.announcementService.UpdateAnnouncement(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, a)
}

// DeleteAnnouncement godoc
// @Summary      Delete an announcement
// @Tags         announcements
// @Security     BearerAuth
// @Param        id path string true "Announcement ID (UUID)"
// @Success      204 "Deleted"
// @Failure      404 {object} response.ErrorResponse
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseID(c, "id", "announcement")
	if !ok {
		return
	}

	if err := h.announcementService.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
