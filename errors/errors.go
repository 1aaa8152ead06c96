package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeUserExists         ErrorCode = "USER_EXISTS"
	ErrCodeExpiredCode        ErrorCode = "EXPIRED_CODE"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField    ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"

	// Business errors
	ErrCodePolicyViolation   ErrorCode = "POLICY_VIOLATION"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeConflict          ErrorCode = "CONFLICT"
)

// FieldError là lỗi gắn với một field của input
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Fields  []FieldError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus trả về http status tương ứng với mã lỗi
func (e *AppError) HTTPStatus() int {
	return StatusFor(e.Code)
}

// StatusFor ánh xạ ErrorCode sang http status
func StatusFor(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidFormat, ErrCodeMissingParameter, ErrCodeExpiredCode:
		return http.StatusBadRequest
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeMissingToken, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodePolicyViolation:
		return http.StatusForbidden
	case ErrCodeDBNotFound:
		return http.StatusNotFound
	case ErrCodeConflict, ErrCodeDBDuplicate, ErrCodeInvalidTransition, ErrCodeUserExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithFields gắn danh sách lỗi theo field
func (e *AppError) WithFields(fields ...FieldError) *AppError {
	e.Fields = append(e.Fields, fields...)
	return e
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra mã lỗi của err
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

func Validation(message string, fields ...FieldError) *AppError {
	return NewAppError(ErrCodeValidation, message, nil).WithFields(fields...)
}

func MissingParameter(param string) *AppError {
	return NewAppError(ErrCodeMissingParameter, "Thiếu tham số "+param, nil).
		WithFields(FieldError{Field: param, Message: "bắt buộc"})
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeDBNotFound, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func PolicyViolation(message string) *AppError {
	return NewAppError(ErrCodePolicyViolation, message, nil)
}

func InvalidTransition(from, to string) *AppError {
	return NewAppError(ErrCodeInvalidTransition, fmt.Sprintf("Không thể chuyển trạng thái từ %s sang %s", from, to), nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

// Duplicate dùng khi insert vi phạm unique constraint
func Duplicate(message string, err error) *AppError {
	return NewAppError(ErrCodeDBDuplicate, message, err)
}

func Internal(err error) *AppError {
	return NewAppError(ErrCodeDBError, "Lỗi server", err)
}
