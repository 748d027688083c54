package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID берёт X-Request-ID клиента, если это UUID, иначе выдаёт новый
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}

		c.Set(RequestIDKey, id.String())
		c.Header(RequestIDHeader, id.String())
		c.Next()
	}
}

// GetRequestID идентификатор текущего запроса
func GetRequestID(c *gin.Context) uuid.UUID {
	if id, err := uuid.Parse(c.GetString(RequestIDKey)); err == nil {
		return id
	}
	return uuid.New()
}
