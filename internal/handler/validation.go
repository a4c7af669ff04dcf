package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// RegisterValidators 向 gin 的 binding 校验器注册自定义规则，启动时调用一次
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}

// bindingErrorDetail 把校验错误转成按字段的可读描述
func bindingErrorDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeFieldError(fe))
	}
	return strings.Join(parts, "; ")
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		if fe.Tag() == "username" {
			return "Username must be alphanumeric"
		}
		return "Username must be between 3 and 20 characters"
	case "Password":
		return "Password must be at least 6 characters"
	case "Email":
		return "Invalid email address"
	case "Rating":
		return "Rating must be between 1 and 10"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
