package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/services"
	"github.com/yigit/refbase/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OfficialController handles roster related operations
type OfficialController struct {
	officialService  services.OfficialService
	integrityService services.IntegrityService
	logger           zerolog.Logger
}

// NewOfficialController creates a new OfficialController
func NewOfficialController(officialService services.OfficialService, integrityService services.IntegrityService, logger zerolog.Logger) *OfficialController {
	return &OfficialController{
		officialService:  officialService,
		integrityService: integrityService,
		logger:           logger,
	}
}

// GetOfficials godoc
// @Summary List officials
// @Description Lists the roster with optional filters and pagination
// @Tags officials
// @Produce json
// @Param q query string false "Search in name, FIVB ID, nationality and email"
// @Param zone query string false "Filter by zone"
// @Param positionType query string false "Filter by position type"
// @Param refLevel query string false "Filter by referee level"
// @Param type query string false "Filter by discipline"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 200)"
// @Success 200 {object} dto.APIResponse{data=dto.OfficialListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials [get]
func (c *OfficialController) GetOfficials(ctx *gin.Context) {
	var filter dto.OfficialFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	list, err := c.officialService.GetOfficials(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list})
}

// GetOfficialByID godoc
// @Summary Get an official
// @Description Gets one official by ID
// @Tags officials
// @Produce json
// @Param id path string true "Official ID"
// @Success 200 {object} dto.APIResponse{data=dto.OfficialResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/{id} [get]
func (c *OfficialController) GetOfficialByID(ctx *gin.Context) {
	official, err := c.officialService.GetOfficialByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromOfficial(official)})
}

// CreateOfficial godoc
// @Summary Create an official
// @Description Adds a new official to the roster
// @Tags officials
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.OfficialRequest true "Official data"
// @Success 201 {object} dto.APIResponse{data=dto.OfficialResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials [post]
func (c *OfficialController) CreateOfficial(ctx *gin.Context) {
	var req dto.OfficialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	official, err := c.officialService.CreateOfficial(ctx.Request.Context(), middleware.GetSession(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("officialId", official.ID).Str("name", official.DisplayName()).Msg("Official created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.FromOfficial(official)})
}

// UpdateOfficial godoc
// @Summary Update an official
// @Description Replaces an official's editable fields
// @Tags officials
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Official ID"
// @Param request body dto.OfficialRequest true "Official data"
// @Success 200 {object} dto.APIResponse{data=dto.OfficialResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/{id} [put]
func (c *OfficialController) UpdateOfficial(ctx *gin.Context) {
	var req dto.OfficialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	official, err := c.officialService.UpdateOfficial(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromOfficial(official)})
}

// DeleteOfficial godoc
// @Summary Delete an official
// @Description Removes an official together with their availability
// @Description answers, nominations and local attachment files
// @Tags officials
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Official ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/{id} [delete]
func (c *OfficialController) DeleteOfficial(ctx *gin.Context) {
	if err := c.integrityService.DeleteOfficial(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Official deleted"}})
}

// UploadPhoto godoc
// @Summary Upload an official's photo
// @Tags officials
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Official ID"
// @Param file formData file true "Photo file (jpg, jpeg or png)"
// @Success 200 {object} dto.APIResponse{data=dto.OfficialResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/{id}/photo [put]
func (c *OfficialController) UploadPhoto(ctx *gin.Context) {
	c.uploadAttachment(ctx, c.officialService.UploadPhoto)
}

// UploadPassport godoc
// @Summary Upload an official's passport scan
// @Tags officials
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Official ID"
// @Param file formData file true "Passport file (jpg, jpeg, png or pdf)"
// @Success 200 {object} dto.APIResponse{data=dto.OfficialResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/{id}/passport [put]
func (c *OfficialController) UploadPassport(ctx *gin.Context) {
	c.uploadAttachment(ctx, c.officialService.UploadPassport)
}

func (c *OfficialController) uploadAttachment(ctx *gin.Context, upload services.AttachmentUploadFunc) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "A file form field is required"),
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Could not read the uploaded file"),
		})
		return
	}
	defer f.Close()

	official, err := upload(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"), fileHeader.Filename, f)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromOfficial(official)})
}

// GetPhoto godoc
// @Summary Download an official's photo
// @Tags officials
// @Produce image/jpeg
// @Param id path string true "Official ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/{id}/photo [get]
func (c *OfficialController) GetPhoto(ctx *gin.Context) {
	rc, contentType, err := c.officialService.OpenPhoto(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer rc.Close()

	c.streamAttachment(ctx, rc, contentType)
}

// GetPassport godoc
// @Summary Download an official's passport scan
// @Tags officials
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param id path string true "Official ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/{id}/passport [get]
func (c *OfficialController) GetPassport(ctx *gin.Context) {
	rc, contentType, err := c.officialService.OpenPassport(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer rc.Close()

	c.streamAttachment(ctx, rc, contentType)
}

func (c *OfficialController) streamAttachment(ctx *gin.Context, rc io.ReadCloser, contentType string) {
	data, err := io.ReadAll(rc)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to read attachment file")
		ctx.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeStorageError, "Failed to read attachment"),
		})
		return
	}
	ctx.Data(http.StatusOK, contentType, data)
}

// ImportOfficials godoc
// @Summary Import officials from a sheet
// @Description Merges a CSV or XLSX roster sheet into the roster
// @Tags officials
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Roster sheet (.csv or .xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReportResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /officials/import [post]
func (c *OfficialController) ImportOfficials(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "A file form field is required"),
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Could not read the uploaded file"),
		})
		return
	}
	defer f.Close()

	report, err := c.officialService.ImportOfficials(ctx.Request.Context(), middleware.GetSession(ctx), fileHeader.Filename, f)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("added", report.Added).
		Int("skippedNoName", report.SkippedNoName).
		Int("skippedDuplicates", report.SkippedDuplicates).
		Msg("Roster import finished")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: report})
}

// ExportOfficials godoc
// @Summary Export the roster as XLSX
// @Tags officials
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} binary
// @Router /officials/export [get]
func (c *OfficialController) ExportOfficials(ctx *gin.Context) {
	data, filename, err := c.officialService.ExportOfficials(ctx.Request.Context(), middleware.GetSession(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, data)
}
