package models

import (
	"time"

	"travelhub/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BookableItem struct {
	Base
	ProviderID uuid.UUID          `gorm:"type:uuid;not null;index" json:"providerId"`
	AreaID     uuid.UUID          `gorm:"column:id_area;type:uuid;not null;index" json:"areaId"`
	ItemType   constants.ItemType `gorm:"type:varchar(20);not null;index" json:"itemType"`
	Title      string             `gorm:"not null" json:"title"`
	Attribute  datatypes.JSONMap  `json:"attribute,omitempty"`
	Price      float64            `gorm:"default:0" json:"price"`
	CreatedAt  time.Time          `gorm:"autoCreateTime" json:"createdAt"`

	Tour          *Tour          `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"tour,omitempty"`
	Accommodation *Accommodation `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"accommodation,omitempty"`
	Vehicle       *Vehicle       `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"vehicle,omitempty"`
	Ticket        *Ticket        `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"ticket,omitempty"`
	Media         []ItemMedia    `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
}

func (BookableItem) TableName() string {
	return "bookable_items"
}

type Tour struct {
	ItemID        uuid.UUID         `gorm:"column:id_item;type:uuid;primaryKey" json:"idItem"`
	GuideLanguage string            `json:"guideLanguage"`
	StartAt       *time.Time        `json:"startAt,omitempty"`
	EndAt         *time.Time        `json:"endAt,omitempty"`
	Attribute     datatypes.JSONMap `json:"attribute,omitempty"` // lịch trình
}

func (Tour) TableName() string {
	return "tours"
}

type Accommodation struct {
	ItemID  uuid.UUID           `gorm:"column:id_item;type:uuid;primaryKey" json:"idItem"`
	Address string              `json:"address"`
	Rooms   []AccommodationRoom `gorm:"foreignKey:ItemID;references:ItemID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
}

func (Accommodation) TableName() string {
	return "accommodations"
}

type AccommodationRoom struct {
	Base
	ItemID    uuid.UUID         `gorm:"column:id_item;type:uuid;not null;index" json:"idItem"`
	Name      string            `gorm:"not null" json:"name"`
	MaxGuest  int               `json:"maxGuest"`
	Price     float64           `json:"price"`
	Attribute datatypes.JSONMap `json:"attribute,omitempty"`
}

func (AccommodationRoom) TableName() string {
	return "accommodations_rooms"
}

type Vehicle struct {
	ItemID    uuid.UUID         `gorm:"column:id_item;type:uuid;primaryKey" json:"idItem"`
	Code      string            `json:"code"`
	MaxGuest  int               `json:"maxGuest"`
	Attribute datatypes.JSONMap `json:"attribute,omitempty"`
	Positions []Position        `gorm:"foreignKey:ItemID;references:ItemID;constraint:OnDelete:CASCADE" json:"positions,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicle"
}

// Position là một ghế của vehicle
type Position struct {
	Base
	ItemID uuid.UUID `gorm:"column:id_item;type:uuid;not null;index" json:"idItem"`
	Code   string    `gorm:"not null" json:"code"`
	Price  float64   `json:"price"`
}

func (Position) TableName() string {
	return "positions"
}

type Ticket struct {
	ItemID uuid.UUID `gorm:"column:id_item;type:uuid;primaryKey" json:"idItem"`
	Kind   string    `gorm:"column:ticket_kind" json:"ticketKind"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type ItemMedia struct {
	Base
	ItemID    uuid.UUID `gorm:"column:id_item;type:uuid;not null;index" json:"idItem"`
	MediaType string    `gorm:"type:varchar(10);not null" json:"mediaType"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ItemMedia) TableName() string {
	return "item_media"
}
