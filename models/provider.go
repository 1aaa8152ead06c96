package models

import (
	"time"

	"github.com/google/uuid"
)

type Provider struct {
	Base
	Name      string    `gorm:"not null" json:"name"`
	AreaID    uuid.UUID `gorm:"type:uuid;not null;index" json:"areaId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Phone     string    `gorm:"type:varchar(11)" json:"phone"`
	Image     string    `json:"image"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Provider) TableName() string {
	return "provider"
}
