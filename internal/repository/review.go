package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/user/watchcinema/internal/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create 创建影评，同一 (user, movie) 重复提交返回 ErrDuplicate
func (r *ReviewRepository) Create(userID, movieID, rating int, comment string) (*model.Review, error) {
	review := &model.Review{
		UserID:    userID,
		MovieID:   movieID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Create(review).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return review, nil
}

// FindByID 根据 ID 查找影评，不存在返回 nil
func (r *ReviewRepository) FindByID(id int) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete 删除影评
func (r *ReviewRepository) Delete(id int) error {
	return r.db.Delete(&model.Review{}, id).Error
}

// ListByMovie 获取电影的影评（最新在前），附带作者信息
func (r *ReviewRepository) ListByMovie(movieID int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByUser 获取用户的全部影评（最新在前）
func (r *ReviewRepository) ListByUser(userID int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}
