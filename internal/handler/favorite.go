package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/watchcinema/internal/middleware"
	"github.com/user/watchcinema/internal/repository"
	"github.com/user/watchcinema/internal/utils"
)

type favoriteRequest struct {
	MovieID int `json:"movie_id" binding:"required"`
}

type favoriteEntry struct {
	MovieID int       `json:"movie_id"`
	AddedAt time.Time `json:"added_at"`
}

// ListFavorites 获取当前用户的收藏列表
func (h *Handler) ListFavorites(c *gin.Context) {
	user := middleware.CurrentUser(c)

	favorites, err := h.Repos.Favorite.ListByUser(user.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	result := make([]favoriteEntry, 0, len(favorites))
	for _, fav := range favorites {
		result = append(result, favoriteEntry{MovieID: fav.MovieID, AddedAt: fav.AddedAt})
	}
	c.JSON(http.StatusOK, result)
}

// AddFavorite 添加收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorDetail(err))
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.Repos.Favorite.Add(user.ID, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.BadRequest(c, "Movie already in favorites")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	utils.Message(c, "Added to favorites")
}

// RemoveFavorite 取消收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid movie id")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.Repos.Favorite.Remove(user.ID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Favorite not found")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	utils.Message(c, "Removed from favorites")
}
