// Package validator 注册 gin 绑定使用的自定义校验规则
package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/feedify/backend/internal/domain/space"
)

// TagSpaceName 空间名校验标签
const TagSpaceName = "spacename"

// Register 向 gin 默认校验器注册自定义规则
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

// RegisterOn 在指定校验器上注册自定义规则
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation(TagSpaceName, validateSpaceName); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", TagSpaceName, err)
	}
	return nil
}

func validateSpaceName(fl validator.FieldLevel) bool {
	return space.ValidName(fl.Field().String())
}
