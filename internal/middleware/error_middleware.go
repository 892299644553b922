package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers
// funnel every non-binding error through here so status codes stay in
// one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrOfficialNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Official not found")
	case errors.Is(err, apperrors.ErrEventNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Event not found")
	case errors.Is(err, apperrors.ErrAssignmentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Assignment not found")
	case errors.Is(err, apperrors.ErrAvailabilityNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Availability record not found")
	case errors.Is(err, apperrors.ErrAttachmentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Attachment not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrUnsupportedFile):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unsupported file type").WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.APIResponse{Error: detail})
	case errors.Is(err, apperrors.ErrValidationFailed):
		// The wrapped message names the failing field; pass it along.
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.APIResponse{Error: detail})
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Bad request")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Conflict")
	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}
