package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/watchcinema/internal/config"
	"github.com/user/watchcinema/internal/handler"
	"github.com/user/watchcinema/internal/repository"
	"github.com/user/watchcinema/internal/router"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:          "test",
		SecretKey:    "test-secret",
		TokenExpiry:  time.Hour,
		TMDBAPIKey:   "test-tmdb-key",
		TMDBBaseURL:  config.DefaultTMDBBaseURL,
		TMDBLanguage: "ru-RU",
	}
}

// newTestServer 基于 sqlite 的完整路由测试环境
func newTestServer(t *testing.T, cfg *config.Config) (*gin.Engine, *repository.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	repos := repository.NewRepositories(db)
	h := handler.NewHandler(repos, cfg)

	r := gin.New()
	router.RegisterRoutes(r, h)
	return r, repos
}

// doJSON 发送 JSON 请求，token 非空时附带 Bearer 头
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser 注册用户并返回访问令牌
func registerUser(t *testing.T, r *gin.Engine, username, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}
