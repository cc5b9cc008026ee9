package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/go-task-api/internal/services"
)

const userIDCtxKey = "user_id"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError("authorization header required"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	userID, err := h.auth.ValidateToken(c, parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to validate token")
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			abort(c, newUnauthorizedError(services.ErrTokenExpired.Error()))
		case errors.Is(err, services.ErrTokenMalformed):
			abort(c, newUnauthorizedError(services.ErrTokenMalformed.Error()))
		case errors.Is(err, services.ErrUnknownSubject):
			abort(c, newUnauthorizedError(services.ErrUnknownSubject.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
