package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/pkg/auth"
)

// AuthMiddleware resolves the caller's session from the request
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// WithSession attaches the caller's session to the request context.
// Requests without a token proceed anonymously; a token that is present
// but fails validation is rejected rather than downgraded.
func (m *AuthMiddleware) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(sessionKey, auth.Anonymous())
			c.Next()
			return
		}

		tokenString := extractToken(authHeader)
		if tokenString == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication failed")
			errorDetail = errorDetail.WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			} else if errors.Is(err, auth.ErrInvalidFormat) {
				errorDetails = "Invalid token format"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(sessionKey, claims.Session())
		c.Next()
	}
}

// AdminRequired rejects requests whose session lacks the admin
// capability. Must run after WithSession.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session.ID == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}
		if !session.Admin {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("This operation requires admin access")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// extractToken pulls the JWT out of an Authorization header. A raw token
// without the Bearer prefix is accepted; some clients send it that way.
func extractToken(authHeader string) string {
	if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader
	}
	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err == nil {
		return tokenString
	}
	trimmed := strings.Trim(authHeader, "\"'")
	if strings.HasPrefix(trimmed, "Bearer ") {
		return strings.TrimPrefix(trimmed, "Bearer ")
	}
	if strings.Count(trimmed, ".") == 2 {
		return trimmed
	}
	return ""
}
