package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/watchcinema/internal/model"
)

// InitDB 初始化数据库连接并迁移表结构
func InitDB(databaseURL string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 gorm 失败: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}

	return db, nil
}

// Migrate 创建数据表与唯一索引
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Favorite{},
		&model.WatchHistory{},
		&model.Review{},
	)
}

// ErrDuplicate 唯一约束冲突
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// isDuplicateKey 判断是否为唯一约束冲突。
// gorm 的 TranslateError 覆盖大多数驱动，lib/pq 连接走 SQLSTATE 23505 兜底。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Favorite *FavoriteRepository
	History  *HistoryRepository
	Review   *ReviewRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Favorite: NewFavoriteRepository(db),
		History:  NewHistoryRepository(db),
		Review:   NewReviewRepository(db),
	}
}
