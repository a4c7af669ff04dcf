package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultTMDBBaseURL TMDB 接口默认地址
const DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

// Config 应用配置
type Config struct {
	Env          string
	Port         string
	SecretKey    string
	DatabaseURL  string
	TokenExpiry  time.Duration
	TMDBAPIKey   string
	TMDBBaseURL  string
	TMDBLanguage string
	UseTMDBCache bool
	TMDBCacheDir string
}

// Load 加载配置，TMDB_API_KEY 缺失时返回错误（启动时致命）
func Load() (*Config, error) {
	expiryHours, _ := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "24"))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "watch_cinema")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	}

	secretKey := getEnv("SECRET_KEY", "your-secret-key-change-in-production")
	if getEnv("APP_ENV", "development") == "production" && secretKey == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 SECRET_KEY 环境变量。")
	}

	apiKey := os.Getenv("TMDB_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY not found in environment variables, " +
			"please create a .env file with your TMDB API key " +
			"(get one from https://www.themoviedb.org/settings/api)")
	}

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "8000"),
		SecretKey:    secretKey,
		DatabaseURL:  dbURL,
		TokenExpiry:  time.Duration(expiryHours) * time.Hour,
		TMDBAPIKey:   apiKey,
		TMDBBaseURL:  getEnv("TMDB_BASE_URL", DefaultTMDBBaseURL),
		TMDBLanguage: getEnv("TMDB_LANGUAGE", "ru-RU"),
		UseTMDBCache: parseBool(os.Getenv("USE_TMDB_CACHE")),
		TMDBCacheDir: getEnv("TMDB_CACHE_DIR", "cache/tmdb"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBool 宽松解析开关值（1/true/yes 视为开启）
func parseBool(value string) bool {
	switch value {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	}
	return false
}
