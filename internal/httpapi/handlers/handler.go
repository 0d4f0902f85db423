package handlers

import (
	"github.com/suPer8Hu/supportbot/internal/bot"
	"github.com/suPer8Hu/supportbot/internal/config"
	"github.com/suPer8Hu/supportbot/internal/jobs"
	"github.com/suPer8Hu/supportbot/internal/session"
	"github.com/suPer8Hu/supportbot/internal/store/rabbitmq"
)

type Handler struct {
	Cfg    config.Config
	Engine *bot.Engine
	Store  session.Store

	// Jobs and Queue are nil when the async pipeline is disabled.
	Jobs  *jobs.Repo
	Queue *rabbitmq.Publisher
}

func NewHandler(cfg config.Config, engine *bot.Engine, store session.Store, jobRepo *jobs.Repo, queue *rabbitmq.Publisher) *Handler {
	return &Handler{
		Cfg:    cfg,
		Engine: engine,
		Store:  store,
		Jobs:   jobRepo,
		Queue:  queue,
	}
}
