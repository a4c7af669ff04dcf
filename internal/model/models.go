package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id" gorm:"primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"unique"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	PasswordHash string    `json:"-" db:"password_hash"`
	AvatarURL    string    `json:"avatar_url" db:"avatar_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TableName 对应 users 表
func (User) TableName() string {
	return "users"
}

// DisplayIdentity 展示名称（未设置时回退到用户名）
func (u *User) DisplayIdentity() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Favorite 收藏
type Favorite struct {
	ID      int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID  int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_favorites_user_movie"`
	MovieID int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_favorites_user_movie"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
}

// TableName 对应 favorites 表
func (Favorite) TableName() string {
	return "favorites"
}

// WatchHistory 观影历史，同一 (user, movie) 只保留一条记录
type WatchHistory struct {
	ID        int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_history_user_movie"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_history_user_movie"`
	WatchedAt time.Time `json:"watched_at" db:"watched_at"`
}

// TableName 对应 watch_history 表
func (WatchHistory) TableName() string {
	return "watch_history"
}

// Review 影评，同一 (user, movie) 只允许一条
type Review struct {
	ID        int       `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_reviews_user_movie"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_reviews_user_movie"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"` // 关联查询时填充
}

// TableName 对应 reviews 表
func (Review) TableName() string {
	return "reviews"
}
