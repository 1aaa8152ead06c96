package services

import (
	"context"
	stderrors "errors"
	"mime/multipart"
	"strings"

	"travelhub/constants"
	"travelhub/dto"
	"travelhub/errors"
	"travelhub/models"
	"travelhub/services/metrics"
	"travelhub/services/notification"
	"travelhub/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const providerImageFolder = "providers"

type ProviderService struct {
	db        *gorm.DB
	logger    *zap.Logger
	storage   ImageStorage
	publisher notification.Publisher
	metrics   *metrics.Metrics
}

type ProviderServiceOptions struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	Storage   ImageStorage
	Publisher notification.Publisher
	Metrics   *metrics.Metrics
}

func NewProviderService(opts ProviderServiceOptions) *ProviderService {
	pub := opts.Publisher
	if pub == nil {
		pub = notification.NopPublisher{}
	}
	return &ProviderService{
		db:        opts.DB,
		logger:    opts.Logger,
		storage:   opts.Storage,
		publisher: pub,
		metrics:   opts.Metrics,
	}
}

// Create luôn tạo provider ở trạng thái pending, bỏ qua status client gửi lên
func (s *ProviderService) Create(ctx context.Context, userID uuid.UUID, in dto.CreateProviderInput) (*dto.ProviderResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := validator.ValidateRequired("name", name, "Tên nhà cung cấp không được để trống"); err != nil {
		return nil, err
	}
	areaID, err := validator.ParseUUID("areaId", in.AreaID)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(in.Phone); err != nil {
		return nil, err
	}

	var area models.Area
	if err := s.db.WithContext(ctx).First(&area, "id = ?", areaID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Không tìm thấy khu vực")
		}
		return nil, errors.Internal(err)
	}
	if area.Status != constants.AreaStatusActive {
		return nil, errors.PolicyViolation("Khu vực đang ngừng hoạt động")
	}

	provider := models.Provider{
		Name:   name,
		AreaID: areaID,
		UserID: userID,
		Phone:  in.Phone,
		Status: constants.ProviderStatusPending,
	}
	// upload chạy sau insert, trong cùng transaction
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&provider).Error; err != nil {
			return errors.Internal(err)
		}
		image, err := s.upload(ctx, in.Image)
		if err != nil {
			return err
		}
		if image == "" {
			return nil
		}
		provider.Image = image
		if err := tx.Model(&provider).Update("image", image).Error; err != nil {
			return errors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncProviderCreated()
	s.publish(ctx, notification.NewEvent(notification.EventProviderSubmitted, map[string]interface{}{
		"providerId": provider.ID,
		"name":       provider.Name,
		"userId":     provider.UserID,
		"areaId":     provider.AreaID,
	}))

	return s.find(ctx, provider.ID)
}

// ListMine chỉ trả về provider của chính user
func (s *ProviderService) ListMine(ctx context.Context, userID uuid.UUID, q dto.PageQuery) ([]dto.ProviderResponse, int64, error) {
	q.Normalize()
	return s.list(ctx, q, func(db *gorm.DB) *gorm.DB {
		return db.Where("provider.user_id = ?", userID)
	})
}

func (s *ProviderService) GetMine(ctx context.Context, userID, providerID uuid.UUID) (*dto.ProviderResponse, error) {
	if _, err := s.owned(ctx, userID, providerID); err != nil {
		return nil, err
	}
	return s.find(ctx, providerID)
}

// UpdateMine cho owner sửa tên, số điện thoại, ảnh. Khu vực không đổi được.
func (s *ProviderService) UpdateMine(ctx context.Context, userID, providerID uuid.UUID, in dto.UpdateProviderInput) (*dto.ProviderResponse, error) {
	provider, err := s.owned(ctx, userID, providerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validator.ValidateRequired("name", name, "Tên nhà cung cấp không được để trống"); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if in.Phone != nil {
		if err := validator.ValidatePhone(*in.Phone); err != nil {
			return nil, err
		}
		updates["phone"] = *in.Phone
	}
	if in.Image != nil {
		image, err := s.upload(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		updates["image"] = image
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(provider).Updates(updates).Error; err != nil {
			return nil, errors.Internal(err)
		}
	}
	return s.find(ctx, providerID)
}

// ListForAdmin mặc định lọc pending, status=all để lấy tất cả
func (s *ProviderService) ListForAdmin(ctx context.Context, q dto.ProviderListQuery) ([]dto.ProviderResponse, int64, error) {
	q.Normalize()
	status := q.Status
	if status == "" {
		status = constants.ProviderStatusPending
	}
	switch status {
	case constants.StatusAll, constants.ProviderStatusPending, constants.ProviderStatusActive, constants.ProviderStatusInactive:
	default:
		return nil, 0, errors.Validation("Trạng thái không hợp lệ",
			errors.FieldError{Field: "status", Message: "phải là pending, active, inactive hoặc all"})
	}

	return s.list(ctx, q.PageQuery, func(db *gorm.DB) *gorm.DB {
		if status == constants.StatusAll {
			return db
		}
		return db.Where("provider.status = ?", status)
	})
}

// Review duyệt provider: chỉ pending mới chuyển được sang active hoặc inactive
func (s *ProviderService) Review(ctx context.Context, providerID uuid.UUID, status string) (*dto.ProviderResponse, error) {
	if status != constants.ProviderStatusActive && status != constants.ProviderStatusInactive {
		return nil, errors.Validation("Trạng thái không hợp lệ",
			errors.FieldError{Field: "status", Message: "phải là active hoặc inactive"})
	}

	res := s.db.WithContext(ctx).Model(&models.Provider{}).
		Where("id = ? AND status = ?", providerID, constants.ProviderStatusPending).
		Update("status", status)
	if res.Error != nil {
		return nil, errors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		var current models.Provider
		if err := s.db.WithContext(ctx).First(&current, "id = ?", providerID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.NotFound("Không tìm thấy nhà cung cấp")
			}
			return nil, errors.Internal(err)
		}
		return nil, errors.InvalidTransition(current.Status, status)
	}

	s.metrics.IncProviderReviewed(status)
	resp, err := s.find(ctx, providerID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notification.NewEvent(notification.EventProviderReviewed, map[string]interface{}{
		"providerId": resp.ID,
		"name":       resp.Name,
		"userId":     resp.UserID,
		"status":     status,
	}))
	return resp, nil
}

// AdminUpdate sửa trực tiếp provider, dùng khi cần xét duyệt lại
func (s *ProviderService) AdminUpdate(ctx context.Context, providerID uuid.UUID, in dto.AdminUpdateProviderInput) (*dto.ProviderResponse, error) {
	var provider models.Provider
	if err := s.db.WithContext(ctx).First(&provider, "id = ?", providerID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Không tìm thấy nhà cung cấp")
		}
		return nil, errors.Internal(err)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validator.ValidateRequired("name", name, "Tên nhà cung cấp không được để trống"); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if in.Phone != nil {
		if err := validator.ValidatePhone(*in.Phone); err != nil {
			return nil, err
		}
		updates["phone"] = *in.Phone
	}
	if in.AreaID != nil {
		areaID, err := validator.ParseUUID("areaId", *in.AreaID)
		if err != nil {
			return nil, err
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Area{}).Where("id = ?", areaID).Count(&count).Error; err != nil {
			return nil, errors.Internal(err)
		}
		if count == 0 {
			return nil, errors.NotFound("Không tìm thấy khu vực")
		}
		updates["area_id"] = areaID
	}
	if in.Status != nil {
		switch *in.Status {
		case constants.ProviderStatusPending, constants.ProviderStatusActive, constants.ProviderStatusInactive:
			updates["status"] = *in.Status
		default:
			return nil, errors.Validation("Trạng thái không hợp lệ",
				errors.FieldError{Field: "status", Message: "phải là pending, active hoặc inactive"})
		}
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&provider).Updates(updates).Error; err != nil {
			return nil, errors.Internal(err)
		}
	}
	return s.find(ctx, providerID)
}

// owned tải provider và kiểm tra quyền sở hữu
func (s *ProviderService) owned(ctx context.Context, userID, providerID uuid.UUID) (*models.Provider, error) {
	return loadOwnedProvider(s.db.WithContext(ctx), userID, providerID)
}

func loadOwnedProvider(db *gorm.DB, userID, providerID uuid.UUID) (*models.Provider, error) {
	var provider models.Provider
	if err := db.First(&provider, "id = ?", providerID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Forbidden("Nhà cung cấp không tồn tại hoặc không thuộc về bạn")
		}
		return nil, errors.Internal(err)
	}
	if provider.UserID != userID {
		return nil, errors.Forbidden("Nhà cung cấp không tồn tại hoặc không thuộc về bạn")
	}
	return &provider, nil
}

func (s *ProviderService) withLocation(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table("provider").
		Select(`provider.id, provider.name, provider.phone, provider.image, provider.status,
			provider.user_id, provider.area_id, provider.created_at, provider.updated_at,
			COALESCE(area.name, '') AS area_name,
			COALESCE(cities.name, '') AS city_name,
			COALESCE(countries.name, '') AS country_name`).
		Joins("LEFT JOIN area ON area.id = provider.area_id").
		Joins("LEFT JOIN cities ON cities.id = area.city_id").
		Joins("LEFT JOIN countries ON countries.id = cities.country_id")
}

func (s *ProviderService) find(ctx context.Context, providerID uuid.UUID) (*dto.ProviderResponse, error) {
	var resp dto.ProviderResponse
	res := s.withLocation(ctx).Where("provider.id = ?", providerID).Limit(1).Scan(&resp)
	if res.Error != nil {
		return nil, errors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errors.NotFound("Không tìm thấy nhà cung cấp")
	}
	return &resp, nil
}

func (s *ProviderService) list(ctx context.Context, q dto.PageQuery, scope func(*gorm.DB) *gorm.DB) ([]dto.ProviderResponse, int64, error) {
	var total int64
	if err := scope(s.db.WithContext(ctx).Model(&models.Provider{})).Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err)
	}

	providers := []dto.ProviderResponse{}
	err := scope(s.withLocation(ctx)).
		Order("provider.created_at DESC").
		Offset(q.Page * q.Limit).
		Limit(q.Limit).
		Scan(&providers).Error
	if err != nil {
		return nil, 0, errors.Internal(err)
	}
	return providers, total, nil
}

func (s *ProviderService) upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}
	if s.storage == nil {
		return "", errors.Internal(stderrors.New("image storage is not configured"))
	}
	url, err := s.storage.Upload(ctx, file, providerImageFolder)
	if err != nil {
		return "", errors.Internal(err)
	}
	return url, nil
}

func (s *ProviderService) publish(ctx context.Context, evt notification.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish event failed", zap.String("event", evt.Name), zap.Error(err))
	}
}
