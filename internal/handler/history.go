package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/watchcinema/internal/middleware"
	"github.com/user/watchcinema/internal/utils"
)

type historyRequest struct {
	MovieID int `json:"movie_id" binding:"required"`
}

type historyEntry struct {
	MovieID   int       `json:"movie_id"`
	WatchedAt time.Time `json:"watched_at"`
}

// ListHistory 获取观影历史（最近观看在前）
func (h *Handler) ListHistory(c *gin.Context) {
	user := middleware.CurrentUser(c)

	histories, err := h.Repos.History.ListByUser(user.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	result := make([]historyEntry, 0, len(histories))
	for _, entry := range histories {
		result = append(result, historyEntry{MovieID: entry.MovieID, WatchedAt: entry.WatchedAt})
	}
	c.JSON(http.StatusOK, result)
}

// RecordWatch 记录一次观影（已看过的只刷新时间，新记录触发超额淘汰）
func (h *Handler) RecordWatch(c *gin.Context) {
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorDetail(err))
		return
	}

	user := middleware.CurrentUser(c)
	created, err := h.Repos.History.Record(user.ID, req.MovieID, time.Now().UTC())
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if created {
		utils.Message(c, "Added to watch history")
		return
	}
	utils.Message(c, "Updated watch history")
}
