package constants

// Role là vai trò đã được phân giải của user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
	RoleCustomer Role = "customer"
)

// Role codes lưu trong bảng roles
const (
	RoleCodeAdmin     = "ADMIN"
	RoleCodeAreaOwner = "AREA_OWNER"
	RoleCodeCustomer  = "CUSTOMER"
)

// User status
const (
	UserStatusPending  = "pending"
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBanned   = "banned"
)

// Provider status
const (
	ProviderStatusPending  = "pending"
	ProviderStatusActive   = "active"
	ProviderStatusInactive = "inactive"
)

// Area status
const (
	AreaStatusActive   = "active"
	AreaStatusInactive = "inactive"
)

// StatusAll bỏ qua filter status khi list
const StatusAll = "all"

// ItemType là loại bookable item
type ItemType string

const (
	ItemTypeTour          ItemType = "tour"
	ItemTypeAccommodation ItemType = "accommodation"
	ItemTypeVehicle       ItemType = "vehicle"
	ItemTypeTicket        ItemType = "ticket"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeTour, ItemTypeAccommodation, ItemTypeVehicle, ItemTypeTicket:
		return true
	}
	return false
}

// Media type
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Geography delete policy
const (
	GeoDeleteRestrict = "restrict"
	GeoDeleteCascade  = "cascade"
)
