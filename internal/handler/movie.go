package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/watchcinema/internal/utils"
)

const jsonContentType = "application/json; charset=utf-8"

// pageQuery 解析 page 查询参数，缺省为 1
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// PopularMovies 热门电影透传
func (h *Handler) PopularMovies(c *gin.Context) {
	body, err := h.TMDB.Popular(pageQuery(c))
	if err != nil {
		utils.InternalServerError(c, "Error fetching movies: "+err.Error())
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// SearchMovies 按标题搜索电影
func (h *Handler) SearchMovies(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.BadRequest(c, "Query parameter 'query' is required")
		return
	}

	body, err := h.TMDB.Search(query, pageQuery(c))
	if err != nil {
		utils.InternalServerError(c, "Error searching movies: "+err.Error())
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// MoviesByGenre 按类型筛选电影
func (h *Handler) MoviesByGenre(c *gin.Context) {
	genreID, err := strconv.Atoi(c.Param("genre_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid genre id")
		return
	}

	body, err := h.TMDB.ByGenre(genreID, pageQuery(c))
	if err != nil {
		utils.InternalServerError(c, "Error fetching movies by genre: "+err.Error())
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// MovieDetails 电影详情透传
func (h *Handler) MovieDetails(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid movie id")
		return
	}

	body, err := h.TMDB.Details(movieID)
	if err != nil {
		utils.NotFound(c, "Movie not found: "+err.Error())
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// MovieVideos 电影预告片与视频列表透传
func (h *Handler) MovieVideos(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid movie id")
		return
	}

	body, err := h.TMDB.Videos(movieID)
	if err != nil {
		utils.NotFound(c, "Videos not found: "+err.Error())
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}
