package services

import (
	"context"

	"travelhub/constants"
	"travelhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rolePriority sắp theo thứ tự ưu tiên giảm dần
var rolePriority = []struct {
	code string
	role constants.Role
}{
	{constants.RoleCodeAdmin, constants.RoleAdmin},
	{constants.RoleCodeAreaOwner, constants.RoleOwner},
	{constants.RoleCodeCustomer, constants.RoleCustomer},
}

// ResolveRole chọn role ưu tiên cao nhất trong các role code của user.
// Không có role nào khớp thì là customer.
func ResolveRole(codes []string) constants.Role {
	have := make(map[string]bool, len(codes))
	for _, c := range codes {
		have[c] = true
	}
	for _, p := range rolePriority {
		if have[p.code] {
			return p.role
		}
	}
	return constants.RoleCustomer
}

// RoleCodeFor là role code lưu trong bảng roles của một role
func RoleCodeFor(role constants.Role) string {
	for _, p := range rolePriority {
		if p.role == role {
			return p.code
		}
	}
	return constants.RoleCodeCustomer
}

type RoleService struct {
	db     *gorm.DB
	logger *zap.Logger
}

type RoleServiceOptions struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewRoleService(opts RoleServiceOptions) *RoleService {
	return &RoleService{db: opts.DB, logger: opts.Logger}
}

// UserRole đọc tất cả role của user và phân giải ra một role duy nhất
func (s *RoleService) UserRole(ctx context.Context, userID uuid.UUID) constants.Role {
	var codes []string
	err := s.db.WithContext(ctx).
		Table("role_detail").
		Joins("JOIN roles ON roles.id = role_detail.role_id").
		Where("role_detail.user_id = ?", userID).
		Pluck("roles.code", &codes).Error
	if err != nil {
		s.logger.Warn("resolve role failed, fallback to customer", zap.String("user_id", userID.String()), zap.Error(err))
		return constants.RoleCustomer
	}
	return ResolveRole(codes)
}

// AssignRole ghi một dòng role_detail cho user
func (s *RoleService) AssignRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role constants.Role) error {
	var r models.Role
	if err := tx.WithContext(ctx).Where("code = ?", RoleCodeFor(role)).First(&r).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&models.RoleDetail{UserID: userID, RoleID: r.ID}).Error
}
