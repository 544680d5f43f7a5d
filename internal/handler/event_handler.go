package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecity-api/internal/dto"
	"ecity-api/internal/response"
	"ecity-api/internal/service"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents godoc
// @Summary      List community events
// @Description  Ordered by date
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.EventResponse
// @Router       /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, events)
}

// GetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID (UUID)"
// @Success      200 {object} dto.EventResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary      Schedule an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateEventRequest true "Event"
// @Success      201 {object} dto.EventResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Router       /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary      Edit an event
// @Description  Only the supplied fields change
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID (UUID)"
// @Param        request body dto.UpdateEventRequest true "Fields to change"
// @Success      200 {object} dto.EventResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id path string true "Event ID (UUID)"
// @Success      204 "Deleted"
// @Failure      404 {object} response.ErrorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// JoinEvent godoc
// @Summary      Join an event
// @Description  Adds one participant
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID (UUID)"
// @Success      200 {object} dto.JoinEventResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /events/{id}/join [post]
func (h *EventHandler) JoinEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}

	resp, err := h.eventService.JoinEvent(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, resp)
}
