package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/user/watchcinema/internal/model"
	"github.com/user/watchcinema/internal/repository"
	"github.com/user/watchcinema/internal/utils"
)

const currentUserKey = "current_user"

// GenerateToken 签发访问令牌，sub 为用户 ID
func GenerateToken(userID int, secret string, expiry time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 校验令牌签名与有效期，返回 sub 中的用户 ID
func ParseToken(tokenString, secret string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, jwt.ErrTokenInvalidSubject
	}

	return userID, nil
}

// RequireAuth 认证中间件：校验 Bearer 令牌并解析出用户实体存入上下文。
// 令牌无效、过期或对应用户已不存在时返回 401。
func RequireAuth(secret string, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Invalid authentication credentials")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		userID, err := ParseToken(tokenString, secret)
		if err != nil {
			utils.Unauthorized(c, "Invalid authentication credentials")
			c.Abort()
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			utils.InternalServerError(c, "")
			c.Abort()
			return
		}
		if user == nil {
			utils.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser 从上下文获取已认证用户（仅在 RequireAuth 之后可用）
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(currentUserKey); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
