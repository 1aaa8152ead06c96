package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	FullName            string     `json:"fullName"`
	Phone               string     `gorm:"type:varchar(11)" json:"phone"`
	Status              string     `gorm:"type:varchar(20);not null;index" json:"status"`
	VerificationToken   string     `gorm:"index" json:"-"`
	ResetToken          string     `gorm:"index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
}

type Role struct {
	Base
	Code string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name string `json:"name"`
}

// RoleDetail gán role cho user. Một user có thể có nhiều dòng.
type RoleDetail struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	RoleID uuid.UUID `gorm:"type:uuid;primaryKey" json:"roleId"`
}

func (RoleDetail) TableName() string {
	return "role_detail"
}
