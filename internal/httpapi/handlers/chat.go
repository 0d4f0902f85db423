package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suPer8Hu/supportbot/internal/bot"
	"github.com/suPer8Hu/supportbot/internal/common"
	"github.com/suPer8Hu/supportbot/internal/jobs"
)

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"name": bot.Name, "version": bot.Version})
}

// Welcome returns the canned conversation opener for clients to render before
// the first user message.
func (h *Handler) Welcome(c *gin.Context) {
	common.OK(c, gin.H{"message": bot.WelcomeMessage})
}

type sendMessageReq struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "message required")
		return
	}

	reply, intent := h.Engine.ProcessQuery(c.Request.Context(), req.UserID, req.Message)

	common.OK(c, gin.H{
		"user_id": req.UserID,
		"reply":   reply,
		"intent":  intent,
	})
}

func (h *Handler) GetHistory(c *gin.Context) {
	userID := c.Param("user_id")

	turns, err := h.Store.History(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[GetHistory] user=%s err=%v", userID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to load history")
		return
	}

	stats, known, err := h.Store.Stats(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[GetHistory] stats user=%s err=%v", userID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to load history")
		return
	}

	resp := gin.H{
		"user_id": userID,
		"turns":   turns,
	}
	if known {
		resp["created_at"] = stats.CreatedAt
		resp["message_count"] = stats.MessageCount
	}
	common.OK(c, resp)
}

func (h *Handler) ClearSession(c *gin.Context) {
	userID := c.Param("user_id")

	if err := h.Store.Clear(c.Request.Context(), userID); err != nil {
		log.Printf("[ClearSession] user=%s err=%v", userID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to clear session")
		return
	}
	common.OK(c, gin.H{"user_id": userID, "cleared": true})
}

func (h *Handler) SendMessageAsync(c *gin.Context) {
	if h.Queue == nil || h.Jobs == nil {
		common.Fail(c, http.StatusServiceUnavailable, 50300, "async processing disabled")
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "message required")
		return
	}

	jobID, err := common.NewULID()
	if err != nil {
		log.Printf("[SendMessageAsync] ulid user=%s err=%v", req.UserID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	j := &jobs.Job{
		ID:     jobID,
		UserID: req.UserID,
		Prompt: req.Message,
		Status: jobs.StatusQueued,
	}
	if err := h.Jobs.Create(c.Request.Context(), j); err != nil {
		log.Printf("[SendMessageAsync] create job user=%s err=%v", req.UserID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	if err := h.Queue.PublishJob(c.Request.Context(), j.ID); err != nil {
		log.Printf("[SendMessageAsync] publish user=%s job=%s err=%v", req.UserID, j.ID, err)
		common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
		return
	}

	common.OK(c, gin.H{"job_id": j.ID})
}

func (h *Handler) GetJob(c *gin.Context) {
	if h.Jobs == nil {
		common.Fail(c, http.StatusServiceUnavailable, 50300, "async processing disabled")
		return
	}

	jobID := c.Param("job_id")
	if jobID == "" {
		common.Fail(c, http.StatusBadRequest, 10003, "job_id required")
		return
	}

	j, err := h.Jobs.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		log.Printf("[GetJob] job=%s err=%v", jobID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	common.OK(c, gin.H{
		"job": gin.H{
			"id":         j.ID,
			"user_id":    j.UserID,
			"status":     j.Status,
			"reply":      j.Reply,
			"intent":     j.Intent,
			"error":      j.Error,
			"created_at": j.CreatedAt,
			"updated_at": j.UpdatedAt,
		},
	})
}
