package controllers

import (
	"travelhub/errors"
	"travelhub/middleware"
	"travelhub/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// paramID parse path param kiểu uuid, trả lỗi 400 nếu sai định dạng
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, nil, errors.NewAppError(errors.ErrCodeInvalidFormat, name+" không hợp lệ", err).
			WithFields(errors.FieldError{Field: name, Message: "id không hợp lệ"}))
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c)
		return uuid.Nil, false
	}
	return id, true
}
