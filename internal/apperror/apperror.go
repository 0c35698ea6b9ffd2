package apperror

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// E 业务错误，Status 即响应状态码
type E struct {
	Status     int
	Message    string
	Violations []FieldViolation
	Err        error // 内部原因，只进日志不出响应
}

func (e *E) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *E) Unwrap() error { return e.Err }

func BadRequest(msg string) *E { return &E{Status: http.StatusBadRequest, Message: msg} }

func Unauthorized(msg string) *E { return &E{Status: http.StatusUnauthorized, Message: msg} }

func Forbidden(msg string) *E { return &E{Status: http.StatusForbidden, Message: msg} }

func NotFound(msg string) *E { return &E{Status: http.StatusNotFound, Message: msg} }

func Conflict(msg string) *E { return &E{Status: http.StatusConflict, Message: msg} }

func Internal(msg string, err error) *E {
	return &E{Status: http.StatusInternalServerError, Message: msg, Err: err}
}

func Validation(violations ...FieldViolation) *E {
	return &E{
		Status:     http.StatusBadRequest,
		Message:    "validation failed",
		Violations: violations,
	}
}

// FromBindError 把 gin 绑定错误翻译成带字段明细的 400
func FromBindError(err error) *E {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest(err.Error())
	}
	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldViolation{
			Field:   lowerFirst(fe.Field()),
			Message: violationMessage(fe),
		})
	}
	return Validation(out...)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind().String() == "string" {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// RegisterTagNameFunc 未配置时兜底：StructField → lowerCamel
func lowerFirst(s string) string {
	if s == "" || strings.Contains(s, ".") {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
