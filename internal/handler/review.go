package handler

import (
	"errors"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/watchcinema/internal/middleware"
	"github.com/user/watchcinema/internal/model"
	"github.com/user/watchcinema/internal/repository"
	"github.com/user/watchcinema/internal/utils"
)

type reviewRequest struct {
	MovieID int    `json:"movie_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=10"`
	Comment string `json:"comment"`
}

// reviewAuthor 影评作者信息，username 字段回显展示名称
type reviewAuthor struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type reviewResponse struct {
	ID        int          `json:"id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
	User      reviewAuthor `json:"user"`
}

func reviewWithAuthor(review *model.Review, author *model.User) reviewResponse {
	return reviewResponse{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		User: reviewAuthor{
			ID:        author.ID,
			Username:  author.DisplayIdentity(),
			AvatarURL: author.AvatarURL,
		},
	}
}

// CreateReview 创建影评
func (h *Handler) CreateReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorDetail(err))
		return
	}

	user := middleware.CurrentUser(c)

	// 评论入库前做 HTML 转义
	comment := html.EscapeString(strings.TrimSpace(req.Comment))

	review, err := h.Repos.Review.Create(user.ID, req.MovieID, req.Rating, comment)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.BadRequest(c, "You already reviewed this movie")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	c.JSON(http.StatusOK, reviewWithAuthor(review, user))
}

// DeleteReview 删除影评，只有作者本人可删
func (h *Handler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.Atoi(c.Param("review_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid review id")
		return
	}

	review, err := h.Repos.Review.FindByID(reviewID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if review == nil {
		utils.NotFound(c, "Review not found")
		return
	}

	user := middleware.CurrentUser(c)
	if review.UserID != user.ID {
		utils.Forbidden(c, "You can only delete your own reviews")
		return
	}

	if err := h.Repos.Review.Delete(review.ID); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Message(c, "Review deleted successfully")
}

// MovieReviews 获取电影的影评列表（最新在前）
func (h *Handler) MovieReviews(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid movie id")
		return
	}

	reviews, err := h.Repos.Review.ListByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	result := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		if review.User == nil {
			continue
		}
		result = append(result, reviewWithAuthor(review, review.User))
	}
	c.JSON(http.StatusOK, result)
}

type userReviewEntry struct {
	ID        int       `json:"id"`
	MovieID   int       `json:"movie_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// UserReviews 获取某个用户的全部影评
func (h *Handler) UserReviews(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	reviews, err := h.Repos.Review.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	result := make([]userReviewEntry, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, userReviewEntry{
			ID:        review.ID,
			MovieID:   review.MovieID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}
