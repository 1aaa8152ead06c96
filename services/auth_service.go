package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"travelhub/constants"
	"travelhub/dto"
	"travelhub/errors"
	"travelhub/models"
	"travelhub/services/notification"
	"travelhub/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const ResetTokenTTL = 15 * time.Minute

type AuthService struct {
	db        *gorm.DB
	logger    *zap.Logger
	roles     *RoleService
	tokens    *TokenService
	publisher notification.Publisher
	now       func() time.Time
}

type AuthServiceOptions struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	Roles     *RoleService
	Tokens    *TokenService
	Publisher notification.Publisher
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	pub := opts.Publisher
	if pub == nil {
		pub = notification.NopPublisher{}
	}
	return &AuthService{
		db:        opts.DB,
		logger:    opts.Logger,
		roles:     opts.Roles,
		tokens:    opts.Tokens,
		publisher: pub,
		now:       time.Now,
	}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Register tạo user ở trạng thái pending kèm đúng một role đã chọn
func (s *AuthService) Register(ctx context.Context, in dto.RegisterInput) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validator.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validator.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(in.Phone); err != nil {
		return nil, err
	}
	if in.Role != constants.RoleOwner && in.Role != constants.RoleCustomer {
		return nil, errors.Validation("Role không hợp lệ", errors.FieldError{Field: "role", Message: "phải là owner hoặc customer"})
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, errors.Internal(err)
	}
	if count > 0 {
		return nil, errors.NewAppError(errors.ErrCodeUserExists, "Email đã được sử dụng", nil)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, errors.Internal(err)
	}

	user := models.User{
		Email:             in.Email,
		Password:          hashed,
		FullName:          strings.TrimSpace(in.FullName),
		Phone:             in.Phone,
		Status:            constants.UserStatusPending,
		VerificationToken: uuid.NewString(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return s.roles.AssignRole(ctx, tx, user.ID, in.Role)
	})
	if err != nil {
		// hai request đăng ký cùng email chạy song song: count ở trên không chặn được
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.NewAppError(errors.ErrCodeUserExists, "Email đã được sử dụng", err)
		}
		return nil, errors.Internal(err)
	}

	s.publish(ctx, notification.NewEvent(notification.EventUserRegistered, map[string]interface{}{
		"userId":            user.ID,
		"email":             user.Email,
		"fullName":          user.FullName,
		"verificationToken": user.VerificationToken,
	}))

	resp := toUserResponse(&user, in.Role)
	return &resp, nil
}

// VerifyEmail chuyển user pending sang active
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*dto.UserResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.MissingParameter("token")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Mã xác thực không hợp lệ", nil)
		}
		return nil, errors.Internal(err)
	}

	if user.Status == constants.UserStatusPending {
		user.Status = constants.UserStatusActive
	}
	user.VerificationToken = ""
	if err := s.db.WithContext(ctx).Model(&user).Select("status", "verification_token").Updates(&user).Error; err != nil {
		return nil, errors.Internal(err)
	}

	resp := toUserResponse(&user, s.roles.UserRole(ctx, user.ID))
	return &resp, nil
}

// Login chỉ cho phép user active
func (s *AuthService) Login(ctx context.Context, in dto.LoginInput) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidCredentials, "Email hoặc mật khẩu không hợp lệ", nil)
		}
		return nil, errors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidCredentials, "Email hoặc mật khẩu không hợp lệ", nil)
	}
	if user.Status != constants.UserStatusActive {
		return nil, errors.Forbidden("Tài khoản chưa được kích hoạt")
	}

	role := s.roles.UserRole(ctx, user.ID)
	token, err := s.tokens.Issue(UserInfo{UserId: user.ID, Role: role})
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(&user, role),
	}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Không tìm thấy người dùng")
		}
		return nil, errors.Internal(err)
	}
	resp := toUserResponse(&user, s.roles.UserRole(ctx, user.ID))
	return &resp, nil
}

// ForgotPassword tạo reset token hết hạn sau ResetTokenTTL
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Người dùng không tồn tại")
		}
		return errors.Internal(err)
	}

	token := uuid.NewString()
	expiresAt := s.now().Add(ResetTokenTTL)
	err := s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"reset_token":            token,
		"reset_token_expires_at": expiresAt,
	}).Error
	if err != nil {
		return errors.Internal(err)
	}

	s.publish(ctx, notification.NewEvent(notification.EventPasswordResetRequested, map[string]interface{}{
		"userId":     user.ID,
		"email":      user.Email,
		"resetToken": token,
		"expiresAt":  expiresAt,
	}))
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, in dto.ResetPasswordInput) error {
	if err := validator.ValidatePassword(in.NewPassword); err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("reset_token = ? AND reset_token <> ''", in.Token).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewAppError(errors.ErrCodeInvalidToken, "Mã đặt lại mật khẩu không hợp lệ", nil)
		}
		return errors.Internal(err)
	}
	if user.ResetTokenExpiresAt == nil || s.now().After(*user.ResetTokenExpiresAt) {
		return errors.NewAppError(errors.ErrCodeExpiredCode, "Mã đặt lại mật khẩu đã hết hạn", nil)
	}

	hashed, err := HashPassword(in.NewPassword)
	if err != nil {
		return errors.Internal(err)
	}
	err = s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"password":               hashed,
		"reset_token":            "",
		"reset_token_expires_at": nil,
	}).Error
	if err != nil {
		return errors.Internal(err)
	}
	return nil
}

// ClearExpiredResetTokens xoá các reset token đã hết hạn, chạy bởi cron
func (s *AuthService) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("reset_token <> '' AND reset_token_expires_at < ?", s.now()).
		Updates(map[string]interface{}{
			"reset_token":            "",
			"reset_token_expires_at": nil,
		})
	return res.RowsAffected, res.Error
}

// EnsureAdmin tạo tài khoản admin active nếu chưa có
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    email,
		Password: hashed,
		FullName: "Administrator",
		Status:   constants.UserStatusActive,
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return s.roles.AssignRole(ctx, tx, admin.ID, constants.RoleAdmin)
	})
}

func (s *AuthService) publish(ctx context.Context, evt notification.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish event failed", zap.String("event", evt.Name), zap.Error(err))
	}
}

func toUserResponse(u *models.User, role constants.Role) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Status:    u.Status,
		Role:      role,
		CreatedAt: u.CreatedAt,
	}
}
