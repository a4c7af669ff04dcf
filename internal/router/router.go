package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/watchcinema/internal/handler"
	"github.com/user/watchcinema/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Watch Cinema API"})
	})

	requireAuth := middleware.RequireAuth(h.Config.SecretKey, h.Repos.User)

	// ==================== 认证 ====================
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", requireAuth, h.Me)
		auth.PUT("/update", requireAuth, h.UpdateProfile)
	}

	// ==================== 收藏（需要登录）====================
	favorites := r.Group("/api/favorites")
	favorites.Use(requireAuth)
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("/:movie_id", h.RemoveFavorite)
	}

	// ==================== 观影历史（需要登录）====================
	history := r.Group("/api/history")
	history.Use(requireAuth)
	{
		history.GET("", h.ListHistory)
		history.POST("", h.RecordWatch)
	}

	// ==================== 影评 ====================
	r.GET("/api/reviews/:movie_id", h.MovieReviews)
	r.POST("/api/reviews", requireAuth, h.CreateReview)
	r.DELETE("/api/reviews/:review_id", requireAuth, h.DeleteReview)
	r.GET("/api/users/:user_id/reviews", h.UserReviews)

	// ==================== 电影目录透传 ====================
	movies := r.Group("/api/movies")
	{
		movies.GET("/popular", h.PopularMovies)
		movies.GET("/search", h.SearchMovies)
		movies.GET("/genre/:genre_id", h.MoviesByGenre)
		movies.GET("/:movie_id", h.MovieDetails)
		movies.GET("/:movie_id/videos", h.MovieVideos)
	}
}
