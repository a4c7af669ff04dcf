package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndMe(t *testing.T) {
	r, _ := newTestServer(t, testConfig())

	token := registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		ID          int    `json:"id"`
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
	}
	decodeBody(t, w, &profile)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice", profile.DisplayName)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.NotZero(t, profile.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := newTestServer(t, testConfig())

	registerUser(t, r, "alice", "alice@example.com")

	// 用户名重复
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already registered")

	// 邮箱重复
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestServer(t, testConfig())

	cases := []struct {
		name   string
		body   map[string]string
		detail string
	}{
		{
			name:   "username too short",
			body:   map[string]string{"username": "ab", "email": "a@example.com", "password": "secret123"},
			detail: "Username must be between 3 and 20 characters",
		},
		{
			name:   "username bad characters",
			body:   map[string]string{"username": "bad name!", "email": "a@example.com", "password": "secret123"},
			detail: "Username must be alphanumeric",
		},
		{
			name:   "invalid email",
			body:   map[string]string{"username": "alice", "email": "not-an-email", "password": "secret123"},
			detail: "Invalid email address",
		},
		{
			name:   "password too short",
			body:   map[string]string{"username": "alice", "email": "a@example.com", "password": "12345"},
			detail: "Password must be at least 6 characters",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.detail)
		})
	}

	// 下划线是合法的用户名字符
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice_w",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLogin(t *testing.T) {
	r, _ := newTestServer(t, testConfig())
	registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "alice", resp.User.Username)

	// 登录返回的令牌能解析回同一个用户
	me := doJSON(t, r, http.MethodGet, "/api/auth/me", resp.AccessToken, nil)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "alice@example.com")
}

func TestLoginBadCredentials(t *testing.T) {
	r, _ := newTestServer(t, testConfig())
	registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r, _ := newTestServer(t, testConfig())
	token := registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/auth/update", token, map[string]string{
		"display_name": "Alice W.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice W.")

	// 改密码后旧密码失效
	w = doJSON(t, r, http.MethodPut, "/api/auth/update", token, map[string]string{
		"password": "newsecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	login := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, login.Code)

	login = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "newsecret",
	})
	assert.Equal(t, http.StatusOK, login.Code)

	// 登录响应的 username 字段回显展示名称
	assert.Contains(t, login.Body.String(), `"username":"Alice W."`)
}

func TestUpdateProfileValidation(t *testing.T) {
	r, _ := newTestServer(t, testConfig())
	token := registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/auth/update", token, map[string]string{
		"display_name": "ab",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Display name must be between 3 and 50 characters")

	w = doJSON(t, r, http.MethodPut, "/api/auth/update", token, map[string]string{
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 6 characters")
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	r, _ := newTestServer(t, testConfig())

	for _, path := range []string{"/api/auth/me", "/api/favorites", "/api/history"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
