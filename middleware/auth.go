package middleware

import (
	"strings"

	"travelhub/constants"
	"travelhub/errors"
	"travelhub/response"
	"travelhub/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// AuthMiddleware xử lý authentication, roles rỗng nghĩa là mọi user đã đăng nhập
func AuthMiddleware(tokens *services.TokenService, roles ...constants.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, nil, errors.NewAppError(errors.ErrCodeMissingToken, "Thiếu access token", nil))
			c.Abort()
			return
		}

		info, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, nil, err)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 && !hasRole(info.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		// Lưu thông tin user vào context
		c.Set(ctxUserID, info.UserId)
		c.Set(ctxUserRole, info.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func hasRole(role constants.Role, allowed []constants.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentUserID lấy user id đã được AuthMiddleware gán
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func CurrentRole(c *gin.Context) constants.Role {
	v, _ := c.Get(ctxUserRole)
	role, _ := v.(constants.Role)
	return role
}
