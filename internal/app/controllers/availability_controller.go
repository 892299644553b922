package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/services"
	"github.com/yigit/refbase/internal/middleware"
)

// AvailabilityController handles the public availability form
type AvailabilityController struct {
	availabilityService services.AvailabilityService
	logger              zerolog.Logger
}

// NewAvailabilityController creates a new AvailabilityController
func NewAvailabilityController(availabilityService services.AvailabilityService, logger zerolog.Logger) *AvailabilityController {
	return &AvailabilityController{
		availabilityService: availabilityService,
		logger:              logger,
	}
}

// GetForm godoc
// @Summary Get the availability form
// @Description Builds the per-official form for one season, pre-filled
// @Description with any answers already on record
// @Tags availability
// @Produce json
// @Param officialId query string true "Official ID"
// @Param season query string true "Season"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityFormResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /availability/form [get]
func (c *AvailabilityController) GetForm(ctx *gin.Context) {
	var req dto.AvailabilityFormRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	form, err := c.availabilityService.GetForm(ctx.Request.Context(), req.OfficialID, req.Season)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: form})
}

// SubmitForm godoc
// @Summary Submit the availability form
// @Description Replaces the official's answers for the whole season
// @Description with the submitted set
// @Tags availability
// @Accept json
// @Produce json
// @Param request body dto.SubmitAvailabilityRequest true "Form answers"
// @Success 200 {object} dto.APIResponse{data=[]dto.AvailabilityResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /availability [post]
func (c *AvailabilityController) SubmitForm(ctx *gin.Context) {
	var req dto.SubmitAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	saved, err := c.availabilityService.Submit(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("officialId", req.OfficialID).
		Str("season", req.Season).
		Int("answers", len(saved)).
		Msg("Availability form submitted")

	responses := make([]dto.AvailabilityResponse, 0, len(saved))
	for i := range saved {
		responses = append(responses, dto.FromAvailability(&saved[i]))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}
