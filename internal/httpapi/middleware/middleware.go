package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/suPer8Hu/supportbot/internal/store/redisstore"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, keeping a caller-provided one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Recovery converts panics into the standard error envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Recovery] panic: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    50000,
					"message": "internal error",
					"data":    nil,
				})
			}
		}()
		c.Next()
	}
}

// RateLimit enforces a fixed-window per-client limit backed by redis. When
// redis is unreachable the request is allowed through rather than failing the
// whole API on a limiter outage.
func RateLimit(rds *redisstore.Store, perMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rl:%s", c.ClientIP())
		n, err := rds.IncrWindow(c.Request.Context(), key, time.Minute)
		if err != nil {
			log.Printf("[RateLimit] redis error: %v", err)
			c.Next()
			return
		}
		if n > int64(perMin) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    42900,
				"message": "too many requests",
				"data":    nil,
			})
			return
		}
		c.Next()
	}
}
