package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/user/watchcinema/internal/model"
)

// historyCap 每个用户最多保留的观影记录条数
const historyCap = 5

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record 记录一次观影。
// 已有记录只刷新时间戳（不触发淘汰）；新记录插入后按时间淘汰最旧的，
// 保证每个用户最多 historyCap 条。
func (r *HistoryRepository) Record(userID, movieID int, watchedAt time.Time) (created bool, err error) {
	res := r.db.Model(&model.WatchHistory{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Update("watched_at", watchedAt)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		// 重看：刷新时间戳即可，数量不变
		return false, nil
	}

	entry := &model.WatchHistory{
		UserID:    userID,
		MovieID:   movieID,
		WatchedAt: watchedAt,
	}
	if err := r.db.Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			// 并发下被抢先插入，退化为刷新
			return false, r.db.Model(&model.WatchHistory{}).
				Where("user_id = ? AND movie_id = ?", userID, movieID).
				Update("watched_at", watchedAt).Error
		}
		return false, err
	}

	return true, r.evict(userID)
}

// evict 删除最新 historyCap 条之外的记录
func (r *HistoryRepository) evict(userID int) error {
	newest := r.db.Model(&model.WatchHistory{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("watched_at DESC, id DESC").
		Limit(historyCap)

	return r.db.Where("user_id = ? AND id NOT IN (?)", userID, newest).
		Delete(&model.WatchHistory{}).Error
}

// ListByUser 获取用户观影历史（最近观看在前）
func (r *HistoryRepository) ListByUser(userID int) ([]*model.WatchHistory, error) {
	var histories []*model.WatchHistory
	err := r.db.Where("user_id = ?", userID).
		Order("watched_at DESC, id DESC").
		Find(&histories).Error
	return histories, err
}
