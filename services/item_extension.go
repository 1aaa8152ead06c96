package services

import (
	"time"

	"travelhub/constants"
	"travelhub/errors"
	"travelhub/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ItemExtension là phần mở rộng theo loại của bookable item. Mỗi loại item
// có đúng một implementation và tạo đúng một dòng ở bảng tương ứng.
type ItemExtension interface {
	ItemType() constants.ItemType
	record(itemID uuid.UUID) interface{}
}

type TourExtension struct {
	GuideLanguage string                 `json:"guideLanguage"`
	StartAt       *time.Time             `json:"startAt"`
	EndAt         *time.Time             `json:"endAt"`
	Attribute     map[string]interface{} `json:"attribute"`
}

func (TourExtension) ItemType() constants.ItemType { return constants.ItemTypeTour }

func (e TourExtension) record(itemID uuid.UUID) interface{} {
	return &models.Tour{
		ItemID:        itemID,
		GuideLanguage: e.GuideLanguage,
		StartAt:       e.StartAt,
		EndAt:         e.EndAt,
		Attribute:     datatypes.JSONMap(e.Attribute),
	}
}

type AccommodationExtension struct {
	Address string `json:"address"`
}

func (AccommodationExtension) ItemType() constants.ItemType { return constants.ItemTypeAccommodation }

func (e AccommodationExtension) record(itemID uuid.UUID) interface{} {
	return &models.Accommodation{ItemID: itemID, Address: e.Address}
}

type VehicleExtension struct {
	Code      string                 `json:"code"`
	MaxGuest  int                    `json:"maxGuest"`
	Attribute map[string]interface{} `json:"attribute"`
}

func (VehicleExtension) ItemType() constants.ItemType { return constants.ItemTypeVehicle }

func (e VehicleExtension) record(itemID uuid.UUID) interface{} {
	return &models.Vehicle{
		ItemID:    itemID,
		Code:      e.Code,
		MaxGuest:  e.MaxGuest,
		Attribute: datatypes.JSONMap(e.Attribute),
	}
}

type TicketExtension struct {
	TicketKind string `json:"ticketKind"`
}

func (TicketExtension) ItemType() constants.ItemType { return constants.ItemTypeTicket }

func (e TicketExtension) record(itemID uuid.UUID) interface{} {
	return &models.Ticket{ItemID: itemID, Kind: e.TicketKind}
}

// DecodeExtension đọc extraData theo itemType. extraData rỗng cho ra extension mặc định.
func DecodeExtension(itemType constants.ItemType, raw []byte) (ItemExtension, error) {
	var ext ItemExtension
	switch itemType {
	case constants.ItemTypeTour:
		var e TourExtension
		if err := decodeExtra(raw, &e); err != nil {
			return nil, err
		}
		if e.StartAt != nil && e.EndAt != nil && e.EndAt.Before(*e.StartAt) {
			return nil, errors.Validation("Thời gian tour không hợp lệ",
				errors.FieldError{Field: "extraData.endAt", Message: "phải sau startAt"})
		}
		ext = e
	case constants.ItemTypeAccommodation:
		var e AccommodationExtension
		if err := decodeExtra(raw, &e); err != nil {
			return nil, err
		}
		ext = e
	case constants.ItemTypeVehicle:
		var e VehicleExtension
		if err := decodeExtra(raw, &e); err != nil {
			return nil, err
		}
		if e.MaxGuest < 0 {
			return nil, errors.Validation("Số khách tối đa không hợp lệ",
				errors.FieldError{Field: "extraData.maxGuest", Message: "không được âm"})
		}
		ext = e
	case constants.ItemTypeTicket:
		var e TicketExtension
		if err := decodeExtra(raw, &e); err != nil {
			return nil, err
		}
		ext = e
	default:
		return nil, errors.Validation("Loại dịch vụ không hợp lệ",
			errors.FieldError{Field: "itemType", Message: "phải là tour, accommodation, vehicle hoặc ticket"})
	}
	return ext, nil
}

func decodeExtra(raw []byte, target interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "extraData không hợp lệ", err).
			WithFields(errors.FieldError{Field: "extraData", Message: "sai định dạng"})
	}
	return nil
}
