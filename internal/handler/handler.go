package handler

import (
	"github.com/user/watchcinema/internal/config"
	"github.com/user/watchcinema/internal/repository"
	"github.com/user/watchcinema/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
	TMDB   *service.TMDBService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:  repos,
		Config: cfg,
		TMDB:   service.NewTMDBService(cfg),
	}
}
