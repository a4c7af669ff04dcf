package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/user/watchcinema/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add 添加收藏。唯一索引保证原子性，重复收藏返回 ErrDuplicate
func (r *FavoriteRepository) Add(userID, movieID int) error {
	favorite := &model.Favorite{
		UserID:  userID,
		MovieID: movieID,
		AddedAt: time.Now().UTC(),
	}
	if err := r.db.Create(favorite).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Remove 取消收藏，记录不存在返回 ErrNotFound
func (r *FavoriteRepository) Remove(userID, movieID int) error {
	res := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&model.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser 获取用户收藏列表（按添加顺序）
func (r *FavoriteRepository) ListByUser(userID int) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	err := r.db.Where("user_id = ?", userID).
		Order("added_at ASC, id ASC").
		Find(&favorites).Error
	return favorites, err
}
