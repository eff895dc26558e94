package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"alcyxob/trainerpro/internal/ai"
	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/service"
	"alcyxob/trainerpro/internal/storage"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
)

const ContextSubjectKey = "subject"

// AuthMiddleware requires a console token issued by authService.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := authService.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		c.Set(ContextSubjectKey, claims.Subject)
		c.Next()
	}
}

// AccessLog logs one line per request through logger.
func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	return sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
	})
}

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// statusFor maps service and domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, ai.ErrEmptyTopic),
		errors.Is(err, storage.ErrUnsupportedVideoType):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGenerationInProgress),
		errors.Is(err, service.ErrTextGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, ai.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrVideoStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts with the mapped status. Internal errors are logged and
// not echoed to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		abortWithError(c, code, "Internal server error")
		return
	}
	abortWithError(c, code, err.Error())
}
