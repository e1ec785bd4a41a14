package validator

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/huc-prioritizer/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("aoimode", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
		case "region", "basin", "geometry", "entire_domain":
			return true
		}
		return false
	})
	_ = validate.RegisterValidation("policy", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
		case "", "exclude", "exclude_protected", "include", "include_protected":
			return true
		}
		return false
	})
}

// Validate - валидация структуры; ошибки полей превращаются в ErrInvalidRequest
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ErrInvalidRequest
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		// режим и политика - ошибки конфигурации сценария, у них свои коды
		switch fe.Tag() {
		case "aoimode":
			return errors.ErrInvalidAOIMode.WithDetails(map[string]interface{}{"mode": fe.Value()})
		case "policy":
			return errors.ErrInvalidPolicy.WithDetails(map[string]interface{}{"policy": fe.Value()})
		}
		details[fe.Field()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(details)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
