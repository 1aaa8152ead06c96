package models

import (
	"travelhub/constants"

	"gorm.io/gorm"
)

// AutoMigrate tạo/cập nhật toàn bộ bảng
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Role{},
		&RoleDetail{},
		&Country{},
		&City{},
		&Area{},
		&PointOfInterest{},
		&Provider{},
		&BookableItem{},
		&Tour{},
		&Accommodation{},
		&AccommodationRoom{},
		&Vehicle{},
		&Position{},
		&Ticket{},
		&ItemMedia{},
	)
}

// SeedRoles đảm bảo ba role cố định tồn tại
func SeedRoles(db *gorm.DB) error {
	roles := []Role{
		{Code: constants.RoleCodeAdmin, Name: "Quản trị viên"},
		{Code: constants.RoleCodeAreaOwner, Name: "Chủ khu vực"},
		{Code: constants.RoleCodeCustomer, Name: "Khách hàng"},
	}
	for i := range roles {
		if err := db.Where(Role{Code: roles[i].Code}).FirstOrCreate(&roles[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
