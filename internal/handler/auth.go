package handler

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/user/watchcinema/internal/middleware"
	"github.com/user/watchcinema/internal/model"
	"github.com/user/watchcinema/internal/repository"
	"github.com/user/watchcinema/internal/utils"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// userProfile 用户信息响应
type userProfile struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
}

func profileOf(user *model.User) userProfile {
	return userProfile{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		AvatarURL:   user.AvatarURL,
	}
}

// tokenResponse 登录/注册的响应体
type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        userProfile `json:"user"`
}

func (h *Handler) issueToken(user *model.User, profile userProfile, c *gin.Context) {
	token, err := middleware.GenerateToken(user.ID, h.Config.SecretKey, h.Config.TokenExpiry)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        profile,
	})
}

// Register 注册新用户
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorDetail(err))
		return
	}

	if existing, err := h.Repos.User.FindByUsername(req.Username); err != nil {
		utils.InternalServerError(c, "")
		return
	} else if existing != nil {
		utils.BadRequest(c, "Username already registered")
		return
	}
	if existing, err := h.Repos.User.FindByEmail(req.Email); err != nil {
		utils.InternalServerError(c, "")
		return
	} else if existing != nil {
		utils.BadRequest(c, "Email already registered")
		return
	}

	user, err := h.Repos.User.Create(req.Username, req.Email, req.Password)
	if err != nil {
		// 预检查存在竞态，唯一约束兜底
		if errors.Is(err, repository.ErrDuplicate) {
			utils.BadRequest(c, "Username or email already registered")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	h.issueToken(user, profileOf(user), c)
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorDetail(err))
		return
	}

	user, err := h.Repos.User.FindByUsername(req.Username)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || !repository.CheckPassword(req.Password, user.PasswordHash) {
		utils.Unauthorized(c, "Incorrect username or password")
		return
	}

	if user.DisplayName == "" {
		if err := h.Repos.User.UpdateDisplayName(user.ID, user.Username); err != nil {
			utils.InternalServerError(c, "")
			return
		}
		user.DisplayName = user.Username
	}

	// 登录响应中 username 字段回显展示名称，保持既有接口行为
	profile := profileOf(user)
	profile.Username = user.DisplayIdentity()
	h.issueToken(user, profile, c)
}

// Me 获取当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, profileOf(middleware.CurrentUser(c)))
}

// UpdateProfile 更新展示名称或密码
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	user := middleware.CurrentUser(c)

	if req.DisplayName != "" {
		if n := utf8.RuneCountInString(req.DisplayName); n < 3 || n > 50 {
			utils.BadRequest(c, "Display name must be between 3 and 50 characters")
			return
		}
		if err := h.Repos.User.UpdateDisplayName(user.ID, req.DisplayName); err != nil {
			utils.InternalServerError(c, "")
			return
		}
		user.DisplayName = req.DisplayName
	}

	if req.Password != "" {
		if len(req.Password) < 6 {
			utils.BadRequest(c, "Password must be at least 6 characters")
			return
		}
		if err := h.Repos.User.UpdatePassword(user.ID, req.Password); err != nil {
			utils.InternalServerError(c, "")
			return
		}
	}

	c.JSON(http.StatusOK, profileOf(user))
}
