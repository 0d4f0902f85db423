package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suPer8Hu/supportbot/internal/common"
	"github.com/suPer8Hu/supportbot/internal/httpapi/handlers"
	"github.com/suPer8Hu/supportbot/internal/httpapi/middleware"
)

// NewRouter wires the chat API. extra middleware (the rate limiter when
// enabled) applies to the chat group only.
func NewRouter(h *handlers.Handler, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.GET("/ping", h.Ping)

	chat := r.Group("/chat")
	chat.Use(extra...)
	chat.GET("/welcome", h.Welcome)
	chat.POST("/messages", h.SendMessage)
	chat.POST("/messages/async", h.SendMessageAsync)
	chat.GET("/jobs/:job_id", h.GetJob)
	chat.GET("/sessions/:user_id/history", h.GetHistory)
	chat.DELETE("/sessions/:user_id", h.ClearSession)

	return r
}
