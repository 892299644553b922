package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/services"
	"github.com/yigit/refbase/internal/middleware"
)

// RosterController serves the merged nomination and availability report
type RosterController struct {
	rosterService services.RosterService
	logger        zerolog.Logger
}

// NewRosterController creates a new RosterController
func NewRosterController(rosterService services.RosterService, logger zerolog.Logger) *RosterController {
	return &RosterController{
		rosterService: rosterService,
		logger:        logger,
	}
}

// GetRoster godoc
// @Summary Get the roster report
// @Description Merges nominations and availability answers into one table,
// @Description one row per official and event pair
// @Tags roster
// @Produce json
// @Security ApiKeyAuth
// @Param season query string false "Filter by season"
// @Param eventId query string false "Filter by event"
// @Param status query string false "Filter by status (Nominated, Available, Not available, Unknown)"
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /roster [get]
func (c *RosterController) GetRoster(ctx *gin.Context) {
	var filter dto.RosterFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	roster, err := c.rosterService.BuildRoster(ctx.Request.Context(), middleware.GetSession(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: roster})
}

// ExportRoster godoc
// @Summary Export the roster report as XLSX
// @Tags roster
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param season query string false "Filter by season"
// @Param eventId query string false "Filter by event"
// @Param status query string false "Filter by status"
// @Success 200 {file} binary
// @Router /roster/export [get]
func (c *RosterController) ExportRoster(ctx *gin.Context) {
	var filter dto.RosterFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	data, filename, err := c.rosterService.ExportRoster(ctx.Request.Context(), middleware.GetSession(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, data)
}
