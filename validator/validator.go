package validator

import (
	"regexp"
	"strings"

	"travelhub/errors"

	"github.com/google/uuid"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

func fieldError(code errors.ErrorCode, field, message string) *errors.AppError {
	return errors.NewAppError(code, message, nil).
		WithFields(errors.FieldError{Field: field, Message: message})
}

// ValidateEmail validate email
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fieldError(errors.ErrCodeRequiredField, "email", "Email không được để trống")
	}
	if !emailRegex.MatchString(email) {
		return fieldError(errors.ErrCodeInvalidFormat, "email", "Email không hợp lệ")
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return fieldError(errors.ErrCodeRequiredField, "password", "Mật khẩu không được để trống")
	}
	if len(password) < 6 {
		return fieldError(errors.ErrCodeValidation, "password", "Mật khẩu phải có ít nhất 6 ký tự")
	}
	return nil
}

// ValidatePhone chỉ chấp nhận số điện thoại 10 chữ số
func ValidatePhone(phone string) error {
	if phone == "" {
		return fieldError(errors.ErrCodeRequiredField, "phone", "Số điện thoại không được để trống")
	}
	if !phoneRegex.MatchString(phone) {
		return fieldError(errors.ErrCodeInvalidFormat, "phone", "Số điện thoại không hợp lệ")
	}
	return nil
}

// ValidateRequired kiểm tra chuỗi không rỗng sau khi trim
func ValidateRequired(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return fieldError(errors.ErrCodeRequiredField, field, message)
	}
	return nil
}

// ParseUUID parse id từ input, trả lỗi INVALID_FORMAT theo field
func ParseUUID(field, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, fieldError(errors.ErrCodeRequiredField, field, field+" không được để trống")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fieldError(errors.ErrCodeInvalidFormat, field, field+" không hợp lệ")
	}
	return id, nil
}

// ValidatePrice validate giá
func ValidatePrice(field string, price float64) error {
	if price < 0 {
		return fieldError(errors.ErrCodeValidation, field, "Giá không được âm")
	}
	return nil
}

func ValidateMaxGuest(maxGuest int) error {
	if maxGuest < 0 {
		return fieldError(errors.ErrCodeValidation, "maxGuest", "Số khách tối đa không được âm")
	}
	return nil
}
