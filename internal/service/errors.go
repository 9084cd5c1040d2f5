package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayNotFound   = errors.New("play not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrUnauthorized   = errors.New("invalid username or password")
	ErrForbidden      = errors.New("admin role required")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrInvalidInput   = errors.New("invalid input")
)

// FieldError reports which input field was rejected. It matches
// ErrInvalidInput with errors.Is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs struct tags and reports the first failure as a FieldError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := "failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return &FieldError{Field: fe.Field(), Message: msg}
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
