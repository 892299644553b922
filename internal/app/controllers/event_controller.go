package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/services"
	"github.com/yigit/refbase/internal/middleware"
)

// EventController handles event related operations
type EventController struct {
	eventService     services.EventService
	integrityService services.IntegrityService
	logger           zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, integrityService services.IntegrityService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService:     eventService,
		integrityService: integrityService,
		logger:           logger,
	}
}

// GetEvents godoc
// @Summary List events
// @Description Lists events, optionally restricted to one season
// @Tags events
// @Produce json
// @Param season query string false "Filter by season"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse}
// @Router /events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	var filter dto.EventFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	events, err := c.eventService.GetAllEvents(ctx.Request.Context(), filter.Season)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, dto.FromEvent(&events[i]))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.EventListResponse{Events: responses}})
}

// GetSeasons godoc
// @Summary List seasons
// @Description Lists the distinct seasons found on the calendar
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /events/seasons [get]
func (c *EventController) GetSeasons(ctx *gin.Context) {
	seasons, err := c.eventService.GetSeasons(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: seasons})
}

// GetEventByID godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	event, err := c.eventService.GetEventByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromEvent(event)})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Adds a new event to the calendar
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.EventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), middleware.GetSession(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("eventId", event.ID).Str("name", event.Name).Msg("Event created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.FromEvent(event)})
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Event ID"
// @Param request body dto.EventRequest true "Event data"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromEvent(event)})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes an event together with the availability answers
// @Description and nominations that reference it
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	if err := c.integrityService.DeleteEvent(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Event deleted"}})
}
