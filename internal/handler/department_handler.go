package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecity-api/internal/dto"
	"ecity-api/internal/response"
	"ecity-api/internal/service"
)

type DepartmentHandler struct {
	departmentService service.DepartmentService
}

func NewDepartmentHandler(departmentService service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// ListDepartments godoc
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.DepartmentResponse
// @Router       /departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.departmentService.ListDepartments(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, depts)
}

// GetDepartment godoc
// @Summary      Get a department
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Department ID (UUID)"
// @Success      200 {object} dto.DepartmentResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /departments/{id} [get]
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseID(c, "id", "department")
	if !ok {
		return
	}

	dept, err := h.departmentService.GetDepartment(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dept)
}

// CreateDepartment godoc
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.DepartmentRequest true "Department"
// @Success      201 {object} dto.DepartmentResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse "Name already used"
// @Router       /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departmentService.CreateDepartment(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, dept)
}

// UpdateDepartment godoc
// @Summary      Replace a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Department ID (UUID)"
// @Param        request body dto.DepartmentRequest true "Department"
// @Success      200 {object} dto.DepartmentResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseID(c, "id", "department")
	if !ok {
		return
	}

	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departmentService.UpdateDepartment(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dept)
}

// DeleteDepartment godoc
// @Summary      Delete a department
// @Description  Issues keep the department name they were assigned
// @Tags         departments
// @Security     BearerAuth
// @Param        id path string true "Department ID (UUID)"
// @Success      204 "Deleted"
// @Failure      404 {object} response.ErrorResponse
// @Router       /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseID(c, "id", "department")
	if !ok {
		return
	}

	if err := h.departmentService.DeleteDepartment(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
