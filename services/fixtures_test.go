package services

import (
	"context"
	"mime/multipart"
	"sync"
	"testing"

	"travelhub/constants"
	"travelhub/models"
	"travelhub/services/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStorage struct {
	mu      sync.Mutex
	folders []string
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.folders = append(f.folders, folder)
	return "https://cdn.test/" + folder + "/" + file.Filename, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (r *recordingPublisher) Publish(_ context.Context, evt notification.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordingPublisher) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

func seedUser(t *testing.T, db *gorm.DB, codes ...string) models.User {
	t.Helper()
	user := models.User{
		Email:    uuid.NewString() + "@travelhub.test",
		Password: "x",
		Status:   constants.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	for _, code := range codes {
		var role models.Role
		require.NoError(t, db.Where("code = ?", code).First(&role).Error)
		require.NoError(t, db.Create(&models.RoleDetail{UserID: user.ID, RoleID: role.ID}).Error)
	}
	return user
}

type geoFixture struct {
	Country models.Country
	City    models.City
	Area    models.Area
}

func seedGeo(t *testing.T, db *gorm.DB, areaStatus string) geoFixture {
	t.Helper()
	country := models.Country{Name: "Việt Nam", Code: "VN"}
	require.NoError(t, db.Create(&country).Error)
	city := models.City{CountryID: country.ID, Name: "Đà Nẵng"}
	require.NoError(t, db.Create(&city).Error)
	area := models.Area{CityID: city.ID, Name: "Sơn Trà", Status: areaStatus}
	require.NoError(t, db.Create(&area).Error)
	return geoFixture{Country: country, City: city, Area: area}
}

func seedProvider(t *testing.T, db *gorm.DB, userID, areaID uuid.UUID, status string) models.Provider {
	t.Helper()
	p := models.Provider{Name: "Sơn Trà Travel", AreaID: areaID, UserID: userID, Phone: "0905123456", Status: status}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// duplicateOnCreate giả lập driver trả về lỗi unique constraint (đã translate) khi insert vào table
func duplicateOnCreate(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:duplicate_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(gorm.ErrDuplicatedKey)
		}
	})
	require.NoError(t, err)
}
