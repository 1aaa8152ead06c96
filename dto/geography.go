package dto

// Các input dùng chung cho create và patch: field nil nghĩa là không thay đổi

type CountryInput struct {
	Name      *string                `json:"name"`
	Code      *string                `json:"code"`
	Attribute map[string]interface{} `json:"attribute"`
}

type CityInput struct {
	CountryID *string                `json:"countryId"`
	Name      *string                `json:"name"`
	Attribute map[string]interface{} `json:"attribute"`
}

type AreaInput struct {
	CityID    *string                `json:"cityId"`
	Name      *string                `json:"name"`
	Status    *string                `json:"status"`
	Attribute map[string]interface{} `json:"attribute"`
}

type PointOfInterestInput struct {
	AreaID  *string                `json:"areaId"`
	Name    *string                `json:"name"`
	PoiType map[string]interface{} `json:"poiType"`
}

type GeoListQuery struct {
	CountryID string `form:"countryId"`
	CityID    string `form:"cityId"`
	AreaID    string `form:"areaId"`
	Status    string `form:"status"`
	Q         string `form:"q"`
}

// GeoList là kết quả list; Suggestion chỉ có khi lọc theo tên không ra kết quả
type GeoList[T any] struct {
	Items      []T    `json:"items"`
	Suggestion string `json:"suggestion,omitempty"`
}
