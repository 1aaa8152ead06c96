package response

import (
	stderrors "errors"
	"net/http"
	"strings"

	apperrors "travelhub/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code       int                    `json:"code"`
	Mess       string                 `json:"mess"`
	Data       interface{}            `json:"data,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
	ErrorCode  apperrors.ErrorCode    `json:"errorCode,omitempty"`
	Errors     []apperrors.FieldError `json:"errors,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

// Created trả về 201 khi tạo mới thành công
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Tạo mới thành công",
		Data: data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code:      0,
		Mess:      "Lỗi server",
		ErrorCode: apperrors.ErrCodeDBError,
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:      0,
		Mess:      "Chưa xác thực",
		ErrorCode: apperrors.ErrCodeUnauthorized,
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code:      0,
		Mess:      "Không có quyền truy cập",
		ErrorCode: apperrors.ErrCodeForbidden,
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:      0,
		Mess:      message,
		ErrorCode: apperrors.ErrCodeValidation,
	})
}

// Error trả về response theo AppError. Lỗi không xác định được log lại
// và trả về thông báo chung.
func Error(c *gin.Context, log *zap.Logger, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.Internal(err)
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString("requestId")),
				zap.Error(err),
			)
		}
		ServerError(c)
		return
	}

	c.JSON(status, Response{
		Code:      0,
		Mess:      appErr.Message,
		ErrorCode: appErr.Code,
		Errors:    appErr.Fields,
	})
}

// BindingError chuyển lỗi binding của gin thành lỗi validation theo field
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	c.JSON(http.StatusBadRequest, Response{
		Code:      0,
		Mess:      "Dữ liệu không hợp lệ",
		ErrorCode: apperrors.ErrCodeValidation,
		Errors:    fields,
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "bắt buộc"
	case "email":
		return "email không hợp lệ"
	case "uuid", "uuid4":
		return "id không hợp lệ"
	case "oneof":
		return "phải là một trong: " + fe.Param()
	case "min":
		return "tối thiểu " + fe.Param()
	case "gte":
		return "phải lớn hơn hoặc bằng " + fe.Param()
	default:
		return "không hợp lệ"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
