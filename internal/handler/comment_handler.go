package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecity-api/internal/dto"
	"ecity-api/internal/response"
	"ecity-api/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments godoc
// @Summary      Comments of an issue
// @Description  Oldest first, each with its author's public profile
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Issue ID (UUID)"
// @Success      200 {array} dto.CommentResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /issues/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	issueID, ok := parseID(c, "id", "issue")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), issueID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// AddComment godoc
// @Summary      Comment on an issue
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Issue ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "Comment"
// @Success      201 {object} dto.CommentResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /issues/{id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	issueID, ok := parseID(c, "id", "issue")
	if !ok {
		return
	}
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), issueID, identity.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}
