package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// CreateProviderInput nhận từ multipart form. Status gửi lên bị bỏ qua.
type CreateProviderInput struct {
	Name   string                `form:"name" binding:"required"`
	AreaID string                `form:"areaId" binding:"required"`
	Phone  string                `form:"phone" binding:"required"`
	Status string                `form:"status"`
	Image  *multipart.FileHeader `form:"image"`
}

// UpdateProviderInput cho owner: không được đổi khu vực
type UpdateProviderInput struct {
	Name  *string               `form:"name" json:"name"`
	Phone *string               `form:"phone" json:"phone"`
	Image *multipart.FileHeader `form:"image" json:"-"`
}

// AdminUpdateProviderInput cho admin sửa trực tiếp, kể cả khu vực và trạng thái
type AdminUpdateProviderInput struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	AreaID *string `json:"areaId"`
	Status *string `json:"status"`
}

type ReviewProviderInput struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type ProviderListQuery struct {
	PageQuery
	Status string `form:"status"`
}

type ProviderResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	UserID      uuid.UUID `json:"userId"`
	AreaID      uuid.UUID `json:"areaId"`
	AreaName    string    `json:"areaName"`
	CityName    string    `json:"cityName"`
	CountryName string    `json:"countryName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
