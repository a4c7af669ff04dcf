package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Detail string `json:"detail"` // 错误描述
}

// Message 返回带提示语的成功响应
func Message(c *gin.Context, message string) {
	c.JSON(200, gin.H{"message": message})
}

// Error 返回错误响应
func Error(c *gin.Context, code int, detail string) {
	c.JSON(code, ErrorResponse{Detail: detail})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, detail string) {
	Error(c, 400, detail)
}

// Unauthorized 返回401错误
func Unauthorized(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not authenticated"
	}
	Error(c, 401, detail)
}

// Forbidden 返回403错误
func Forbidden(c *gin.Context, detail string) {
	Error(c, 403, detail)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Resource not found"
	}
	Error(c, 404, detail)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	Error(c, 500, detail)
}
