package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecity-api/internal/dto"
	"ecity-api/internal/middleware"
	"ecity-api/internal/response"
	"ecity-api/internal/service"
)

type IssueHandler struct {
	issueService service.IssueService
}

func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// CreateIssue godoc
// @Summary      Report an issue
// @Description  Accepts JSON or multipart/form-data. An "image" file is optional;
// @Description  when it cannot be stored the issue is created without it.
// @Description  Anonymous reports are accepted, a bearer token links the reporter.
// @Tags         issues
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        request body dto.CreateIssueRequest true "Issue"
// @Param        image formData file false "Photo (jpeg, png, gif, webp, heic; max 5 MB)"
// @Success      201 {object} dto.IssueResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse "Invalid token"
// @Failure      429 {object} response.ErrorResponse "Too many reports"
// @Router       /issues [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req dto.CreateIssueRequest
	var image *service.ImageUpload

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBind(&req); err != nil {
			_ = c.Error(err)
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form data")
			return
		}
		// the form binder turns an empty value into 0
		if strings.TrimSpace(c.PostForm("latitude")) == "" {
			req.Latitude = nil
		}
		if strings.TrimSpace(c.PostForm("longitude")) == "" {
			req.Longitude = nil
		}

		fileHeader, err := c.FormFile("image")
		switch {
		case err == nil:
			file, openErr := fileHeader.Open()
			if openErr != nil {
				_ = c.Error(openErr)
				break
			}
			defer file.Close()
			image = &service.ImageUpload{
				FileName:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Size:        fileHeader.Size,
				Reader:      file,
			}
		case !errors.Is(err, http.ErrMissingFile):
			_ = c.Error(err)
		}
	} else if !bindJSON(c, &req) {
		return
	}

	var reporterID *uuid.UUID
	if identity, ok := middleware.GetIdentity(c); ok {
		id := identity.UserID
		reporterID = &id
	}

	issue, err := h.issueService.CreateIssue(c.Request.Context(), &req, reporterID, image)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, issue)
}

// ListIssues godoc
// @Summary      List issues
// @Description  Newest first, filtered and paginated
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Category"
// @Param        status query string false "Status"
// @Param        search query string false "Matches title, description or location"
// @Param        userId query string false "Reporter ID (UUID)"
// @Param        page query int false "Page (default 1)"
// @Param        limit query int false "Page size (default 20, max 100)"
// @Success      200 {object} dto.IssueListResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       /issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	var query dto.IssueListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err)
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	issues, err := h.issueService.ListIssues(c.Request.Context(), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issues)
}

// GetIssue godoc
// @Summary      Get an issue
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Issue ID (UUID)"
// @Success      200 {object} dto.IssueResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /issues/{id} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	id, ok := parseID(c, "id", "issue")
	if !ok {
		return
	}

	issue, err := h.issueService.GetIssue(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issue)
}

// UpdateStatus godoc
// @Summary      Change an issue's status
// @Description  in-progress requires assignedOfficer, assignedDepartment and actionTaken;
// @Description  resolved requires resolutionOfficer and resolutionRemarks; rejected requires rejectionReason.
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Issue ID (UUID)"
// @Param        request body dto.UpdateIssueStatusRequest true "Target status and details"
// @Success      200 {object} dto.IssueResponse
// @Failure      400 {object} response.ErrorResponse "Missing required fields"
// @Failure      403 {object} response.ErrorResponse "Admin access required"
// @Failure      404 {object} response.ErrorResponse
// @Router       /issues/{id}/status [patch]
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "issue")
	if !ok {
		return
	}
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateIssueStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issueService.TransitionStatus(c.Request.Context(), id, &req, identity)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issue)
}

// Upvote godoc
// @Summary      Upvote an issue
// @Description  Adds one upvote. Votes are not limited per user.
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Issue ID (UUID)"
// @Success      200 {object} dto.UpvoteResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /issues/{id}/upvote [post]
func (h *IssueHandler) Upvote(c *gin.Context) {
	id, ok := parseID(c, "id", "issue")
	if !ok {
		return
	}

	resp, err := h.issueService.Upvote(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, resp)
}

// DeleteIssue godoc
// @Summary      Delete an issue
// @Description  Removes the issue together with its comments and status history
// @Tags         issues
// @Security     BearerAuth
// @Param        id path string true "Issue ID (UUID)"
// @Success      204 "Deleted"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /issues/{id} [delete]
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	id, ok := parseID(c, "id", "issue")
	if !ok {
		return
	}
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.issueService.DeleteIssue(c.Request.Context(), id, identity); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStatusHistory godoc
// @Summary      Status history of an issue
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Issue ID (UUID)"
// @Success      200 {array} dto.StatusChangeResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /issues/{id}/history [get]
func (h *IssueHandler) GetStatusHistory(c *gin.Context) {
	id, ok := parseID(c, "id", "issue")
	if !ok {
		return
	}

	history, err := h.issueService.GetStatusHistory(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, history)
}
