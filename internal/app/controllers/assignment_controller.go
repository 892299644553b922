package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/services"
	"github.com/yigit/refbase/internal/middleware"
)

// AssignmentController handles nomination operations
type AssignmentController struct {
	assignmentService services.AssignmentService
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// GetAssignments godoc
// @Summary List nominations
// @Description Lists nominations with event and official names resolved
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param eventId query string false "Filter by event"
// @Param officialId query string false "Filter by official"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignmentResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments [get]
func (c *AssignmentController) GetAssignments(ctx *gin.Context) {
	var filter dto.AssignmentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	assignments, err := c.assignmentService.GetAssignments(ctx.Request.Context(), middleware.GetSession(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: assignments})
}

// CreateAssignment godoc
// @Summary Nominate an official
// @Description Creates a nomination. Nominating the same official for the
// @Description same event twice is allowed but flagged with a warning.
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.AssignmentRequest true "Nomination data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateAssignmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.assignmentService.CreateAssignment(ctx.Request.Context(), middleware.GetSession(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if created.Warning != "" {
		c.logger.Warn().Str("warning", created.Warning).Msg("Duplicate nomination created")
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: created})
}

// DeleteAssignment godoc
// @Summary Delete a nomination
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	if err := c.assignmentService.DeleteAssignment(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Assignment deleted"}})
}
