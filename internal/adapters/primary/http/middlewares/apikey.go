package middlewares

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const APIKeyHeader = "X-API-KEY"

type AuthConfig struct {
	Secret string `envconfig:"SECRET" default:"CHANGE_ME"`
}

// APIKey пропускает запрос дальше только с верным X-API-KEY.
// Отказ происходит до чтения тела запроса.
func APIKey(secret string, log *slog.Logger) gin.HandlerFunc {
	expected := []byte(secret)

	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
			log.Warn("unauthorized request",
				"request_id", c.GetString(RequestIDKey),
				"path", c.Request.URL.Path,
				"key_present", key != "",
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": domain.ErrUnauthorized.Error(),
			})
			return
		}
		c.Next()
	}
}
