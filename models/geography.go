package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Country struct {
	Base
	Name      string            `gorm:"not null" json:"name"`
	Code      string            `gorm:"type:varchar(10)" json:"code"`
	Attribute datatypes.JSONMap `json:"attribute,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"createdAt"`
}

type City struct {
	Base
	CountryID uuid.UUID         `gorm:"type:uuid;not null;index" json:"countryId"`
	Name      string            `gorm:"not null" json:"name"`
	Attribute datatypes.JSONMap `json:"attribute,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"createdAt"`
}

type Area struct {
	Base
	CityID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"cityId"`
	Name      string            `gorm:"not null" json:"name"`
	Attribute datatypes.JSONMap `json:"attribute,omitempty"`
	Status    string            `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"createdAt"`
}

func (Area) TableName() string {
	return "area"
}

type PointOfInterest struct {
	Base
	AreaID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"areaId"`
	Name      string            `gorm:"not null" json:"name"`
	PoiType   datatypes.JSONMap `json:"poiType,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"createdAt"`
}

func (PointOfInterest) TableName() string {
	return "point_of_interest"
}
