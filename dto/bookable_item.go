package dto

import (
	"encoding/json"

	"travelhub/constants"
)

type CreateBookableItemInput struct {
	ProviderID string                 `json:"providerId" binding:"required"`
	ItemType   constants.ItemType     `json:"itemType" binding:"required"`
	Title      string                 `json:"title" binding:"required"`
	Attribute  map[string]interface{} `json:"attribute"`
	Price      *float64               `json:"price"`
	AreaID     *string                `json:"areaId"`
	ExtraData  json.RawMessage        `json:"extraData"`
}

type AddMediaInput struct {
	Type string `form:"type"`
}

type RoomInput struct {
	Name      string                 `json:"name" binding:"required"`
	MaxGuest  int                    `json:"maxGuest"`
	Price     float64                `json:"price"`
	Attribute map[string]interface{} `json:"attribute"`
}

type VehicleInput struct {
	Code      string                 `json:"code"`
	MaxGuest  int                    `json:"maxGuest"`
	Attribute map[string]interface{} `json:"attribute"`
}

type PositionInput struct {
	Code  string  `json:"code" binding:"required"`
	Price float64 `json:"price"`
}

type BrowseItemsQuery struct {
	PageQuery
	AreaID   string `form:"areaId"`
	ItemType string `form:"itemType"`
}
