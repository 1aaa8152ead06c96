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
	"travelhub/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const itemMediaFolder = "bookable-items"

type BookableItemService struct {
	db      *gorm.DB
	logger  *zap.Logger
	storage ImageStorage
	metrics *metrics.Metrics
}

type BookableItemServiceOptions struct {
	DB      *gorm.DB
	Logger  *zap.Logger
	Storage ImageStorage
	Metrics *metrics.Metrics
}

func NewBookableItemService(opts BookableItemServiceOptions) *BookableItemService {
	return &BookableItemService{
		db:      opts.DB,
		logger:  opts.Logger,
		storage: opts.Storage,
		metrics: opts.Metrics,
	}
}

// Create tạo item cùng đúng một dòng extension trong một transaction.
// Provider phải thuộc về user và đang active.
func (s *BookableItemService) Create(ctx context.Context, userID uuid.UUID, in dto.CreateBookableItemInput) (*models.BookableItem, error) {
	providerID, err := validator.ParseUUID("providerId", in.ProviderID)
	if err != nil {
		return nil, err
	}
	if !in.ItemType.Valid() {
		return nil, errors.Validation("Loại dịch vụ không hợp lệ",
			errors.FieldError{Field: "itemType", Message: "phải là tour, accommodation, vehicle hoặc ticket"})
	}
	title := strings.TrimSpace(in.Title)
	if err := validator.ValidateRequired("title", title, "Tiêu đề không được để trống"); err != nil {
		return nil, err
	}
	var price float64
	if in.Price != nil {
		if err := validator.ValidatePrice("price", *in.Price); err != nil {
			return nil, err
		}
		price = *in.Price
	}
	ext, err := DecodeExtension(in.ItemType, in.ExtraData)
	if err != nil {
		return nil, err
	}

	provider, err := loadOwnedProvider(s.db.WithContext(ctx), userID, providerID)
	if err != nil {
		return nil, err
	}
	if provider.Status != constants.ProviderStatusActive {
		return nil, errors.PolicyViolation("Nhà cung cấp chưa được duyệt")
	}

	areaID := provider.AreaID
	if in.AreaID != nil && strings.TrimSpace(*in.AreaID) != "" {
		if areaID, err = validator.ParseUUID("areaId", *in.AreaID); err != nil {
			return nil, err
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Area{}).Where("id = ?", areaID).Count(&count).Error; err != nil {
			return nil, errors.Internal(err)
		}
		if count == 0 {
			return nil, errors.NotFound("Không tìm thấy khu vực")
		}
	}

	item := models.BookableItem{
		ProviderID: provider.ID,
		AreaID:     areaID,
		ItemType:   in.ItemType,
		Title:      title,
		Attribute:  datatypes.JSONMap(in.Attribute),
		Price:      price,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Create(ext.record(item.ID)).Error
	})
	if err != nil {
		s.logger.Error("create bookable item failed",
			zap.String("provider_id", provider.ID.String()),
			zap.String("item_type", string(in.ItemType)),
			zap.Error(err))
		return nil, errors.Internal(err)
	}

	s.metrics.IncItemCreated(string(in.ItemType))
	return s.detail(ctx, item.ID)
}

// ListByProvider liệt kê item của một provider thuộc về user
func (s *BookableItemService) ListByProvider(ctx context.Context, userID, providerID uuid.UUID, q dto.PageQuery) ([]models.BookableItem, int64, error) {
	if _, err := loadOwnedProvider(s.db.WithContext(ctx), userID, providerID); err != nil {
		return nil, 0, err
	}
	q.Normalize()

	query := s.db.WithContext(ctx).Model(&models.BookableItem{}).
		Where("provider_id = ?", providerID).
		Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err)
	}

	items := []models.BookableItem{}
	err := query.Order("created_at DESC").Offset(q.Page * q.Limit).Limit(q.Limit).Find(&items).Error
	if err != nil {
		return nil, 0, errors.Internal(err)
	}
	return items, total, nil
}

// Detail trả về item kèm extension, media, phòng và ghế
func (s *BookableItemService) Detail(ctx context.Context, userID, itemID uuid.UUID) (*models.BookableItem, error) {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.detail(ctx, itemID)
}

// Browse cho khách: item trong khu vực, chỉ của provider đang active
func (s *BookableItemService) Browse(ctx context.Context, q dto.BrowseItemsQuery) ([]models.BookableItem, int64, error) {
	if strings.TrimSpace(q.AreaID) == "" {
		return nil, 0, errors.MissingParameter("areaId")
	}
	areaID, err := validator.ParseUUID("areaId", q.AreaID)
	if err != nil {
		return nil, 0, err
	}
	q.Normalize()

	query := s.db.WithContext(ctx).Model(&models.BookableItem{}).
		Joins("JOIN provider ON provider.id = bookable_items.provider_id").
		Where("bookable_items.id_area = ? AND provider.status = ?", areaID, constants.ProviderStatusActive).
		Session(&gorm.Session{})
	if q.ItemType != "" {
		itemType := constants.ItemType(q.ItemType)
		if !itemType.Valid() {
			return nil, 0, errors.Validation("Loại dịch vụ không hợp lệ",
				errors.FieldError{Field: "itemType", Message: "phải là tour, accommodation, vehicle hoặc ticket"})
		}
		query = query.Where("bookable_items.item_type = ?", itemType).Session(&gorm.Session{})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err)
	}
	items := []models.BookableItem{}
	err = query.Preload("Media").
		Order("bookable_items.created_at DESC").
		Offset(q.Page * q.Limit).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, errors.Internal(err)
	}
	return items, total, nil
}

// AddMedia upload ảnh/video cho item. File là bắt buộc.
func (s *BookableItemService) AddMedia(ctx context.Context, userID, itemID uuid.UUID, mediaType string, file *multipart.FileHeader) (*models.ItemMedia, error) {
	if file == nil {
		return nil, errors.Validation("Cần có file ảnh",
			errors.FieldError{Field: "image", Message: "bắt buộc"})
	}
	if mediaType == "" {
		mediaType = constants.MediaTypeImage
	}
	if mediaType != constants.MediaTypeImage && mediaType != constants.MediaTypeVideo {
		return nil, errors.Validation("Loại media không hợp lệ",
			errors.FieldError{Field: "type", Message: "phải là image hoặc video"})
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, errors.Internal(stderrors.New("image storage is not configured"))
	}

	url, err := s.storage.Upload(ctx, file, itemMediaFolder)
	if err != nil {
		return nil, errors.Internal(err)
	}

	media := models.ItemMedia{ItemID: item.ID, MediaType: mediaType, URL: url}
	if err := s.db.WithContext(ctx).Create(&media).Error; err != nil {
		return nil, errors.Internal(err)
	}
	return &media, nil
}

// AddRoom thêm phòng cho item loại accommodation
func (s *BookableItemService) AddRoom(ctx context.Context, userID, itemID uuid.UUID, in dto.RoomInput) (*models.AccommodationRoom, error) {
	name := strings.TrimSpace(in.Name)
	if err := validator.ValidateRequired("name", name, "Tên phòng không được để trống"); err != nil {
		return nil, err
	}
	if err := validator.ValidateMaxGuest(in.MaxGuest); err != nil {
		return nil, err
	}
	if err := validator.ValidatePrice("price", in.Price); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireExtension(ctx, item, constants.ItemTypeAccommodation, &models.Accommodation{}); err != nil {
		return nil, err
	}

	room := models.AccommodationRoom{
		ItemID:    item.ID,
		Name:      name,
		MaxGuest:  in.MaxGuest,
		Price:     in.Price,
		Attribute: datatypes.JSONMap(in.Attribute),
	}
	if err := s.db.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, errors.Internal(err)
	}
	return &room, nil
}

// UpsertVehicle tạo hoặc cập nhật extension vehicle theo id item
func (s *BookableItemService) UpsertVehicle(ctx context.Context, userID, itemID uuid.UUID, in dto.VehicleInput) (*models.Vehicle, error) {
	if err := validator.ValidateMaxGuest(in.MaxGuest); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.ItemType != constants.ItemTypeVehicle {
		return nil, wrongItemType(constants.ItemTypeVehicle)
	}

	vehicle := models.Vehicle{
		ItemID:    item.ID,
		Code:      strings.TrimSpace(in.Code),
		MaxGuest:  in.MaxGuest,
		Attribute: datatypes.JSONMap(in.Attribute),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_item"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "max_guest", "attribute"}),
	}).Create(&vehicle).Error
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &vehicle, nil
}

// AddPosition thêm ghế cho vehicle
func (s *BookableItemService) AddPosition(ctx context.Context, userID, itemID uuid.UUID, in dto.PositionInput) (*models.Position, error) {
	code := strings.TrimSpace(in.Code)
	if err := validator.ValidateRequired("code", code, "Mã ghế không được để trống"); err != nil {
		return nil, err
	}
	if err := validator.ValidatePrice("price", in.Price); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireExtension(ctx, item, constants.ItemTypeVehicle, &models.Vehicle{}); err != nil {
		return nil, err
	}

	position := models.Position{ItemID: item.ID, Code: code, Price: in.Price}
	if err := s.db.WithContext(ctx).Create(&position).Error; err != nil {
		return nil, errors.Internal(err)
	}
	return &position, nil
}

// ownedItem tải item và kiểm tra provider của nó thuộc về user
func (s *BookableItemService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.BookableItem, error) {
	var item models.BookableItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Không tìm thấy dịch vụ")
		}
		return nil, errors.Internal(err)
	}

	var ownerIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Provider{}).Where("id = ?", item.ProviderID).Pluck("user_id", &ownerIDs).Error; err != nil {
		return nil, errors.Internal(err)
	}
	if len(ownerIDs) == 0 || ownerIDs[0] != userID {
		return nil, errors.Forbidden("Dịch vụ không thuộc về bạn")
	}
	return &item, nil
}

func (s *BookableItemService) requireExtension(ctx context.Context, item *models.BookableItem, want constants.ItemType, model interface{}) error {
	if item.ItemType != want {
		return wrongItemType(want)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id_item = ?", item.ID).Count(&count).Error; err != nil {
		return errors.Internal(err)
	}
	if count == 0 {
		return wrongItemType(want)
	}
	return nil
}

func wrongItemType(want constants.ItemType) error {
	return errors.Validation("Dịch vụ không phải loại "+string(want),
		errors.FieldError{Field: "itemType", Message: "phải là " + string(want)})
}

func (s *BookableItemService) detail(ctx context.Context, itemID uuid.UUID) (*models.BookableItem, error) {
	var item models.BookableItem
	err := s.db.WithContext(ctx).
		Preload("Tour").
		Preload("Accommodation.Rooms").
		Preload("Vehicle.Positions").
		Preload("Ticket").
		Preload("Media").
		First(&item, "id = ?", itemID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Không tìm thấy dịch vụ")
		}
		return nil, errors.Internal(err)
	}
	return &item, nil
}
