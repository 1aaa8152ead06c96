package services

import (
	"context"
	"mime/multipart"
	"testing"

	"travelhub/constants"
	"travelhub/dto"
	"travelhub/errors"
	"travelhub/models"
	"travelhub/services/metrics"
	"travelhub/testutil"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type itemEnv struct {
	svc      *BookableItemService
	db       *gorm.DB
	storage  *fakeStorage
	metrics  *metrics.Metrics
	geo      geoFixture
	owner    models.User
	provider models.Provider
}

func newItemEnv(t *testing.T, providerStatus string) itemEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	env := itemEnv{
		db:      db,
		storage: &fakeStorage{},
		metrics: metrics.New(prometheus.NewRegistry()),
		geo:     seedGeo(t, db, constants.AreaStatusActive),
		owner:   seedUser(t, db, constants.RoleCodeAreaOwner),
	}
	env.provider = seedProvider(t, db, env.owner.ID, env.geo.Area.ID, providerStatus)
	env.svc = NewBookableItemService(BookableItemServiceOptions{
		DB:      db,
		Logger:  zap.NewNop(),
		Storage: env.storage,
		Metrics: env.metrics,
	})
	return env
}

func (e itemEnv) input(itemType constants.ItemType, extra string) dto.CreateBookableItemInput {
	price := 1500000.0
	in := dto.CreateBookableItemInput{
		ProviderID: e.provider.ID.String(),
		ItemType:   itemType,
		Title:      "Bán đảo Sơn Trà",
		Price:      &price,
	}
	if extra != "" {
		in.ExtraData = []byte(extra)
	}
	return in
}

func (e itemEnv) create(t *testing.T, itemType constants.ItemType, extra string) *models.BookableItem {
	t.Helper()
	item, err := e.svc.Create(context.Background(), e.owner.ID, e.input(itemType, extra))
	require.NoError(t, err)
	return item
}

func TestCreateItemRequiresActiveProvider(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusPending)

	_, err := env.svc.Create(context.Background(), env.owner.ID, env.input(constants.ItemTypeTour, ""))
	assert.True(t, errors.HasCode(err, errors.ErrCodePolicyViolation))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.BookableItem{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Tour{}))
}

func TestCreateItemRequiresOwnership(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	stranger := seedUser(t, env.db, constants.RoleCodeAreaOwner)

	_, err := env.svc.Create(context.Background(), stranger.ID, env.input(constants.ItemTypeTour, ""))
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	in := env.input(constants.ItemTypeTour, "")
	in.ProviderID = uuid.NewString()
	_, err = env.svc.Create(context.Background(), env.owner.ID, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	assert.Equal(t, int64(0), countRows(t, env.db, &models.BookableItem{}))
}

func TestCreateItemWritesOneExtensionRow(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)

	item := env.create(t, constants.ItemTypeTour, `{"guideLanguage":"vi","startAt":"2026-11-01T08:00:00Z","endAt":"2026-11-01T17:00:00Z"}`)

	require.NotNil(t, item.Tour)
	assert.Equal(t, "vi", item.Tour.GuideLanguage)
	assert.Equal(t, env.geo.Area.ID, item.AreaID)
	assert.Equal(t, 1500000.0, item.Price)
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Tour{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Accommodation{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Vehicle{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Ticket{}))
	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.BookableItemsCreated.WithLabelValues("tour")))
}

func TestCreateItemRejectsBadExtension(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.owner.ID, env.input(constants.ItemTypeTour, `{"startAt":"2026-11-02T08:00:00Z","endAt":"2026-11-01T08:00:00Z"}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = env.svc.Create(ctx, env.owner.ID, env.input("cruise", ""))
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	negative := -1.0
	in := env.input(constants.ItemTypeTicket, "")
	in.Price = &negative
	_, err = env.svc.Create(ctx, env.owner.ID, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	assert.Equal(t, int64(0), countRows(t, env.db, &models.BookableItem{}))
}

func TestCreateItemAreaOverride(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	ctx := context.Background()
	myKhe := models.Area{CityID: env.geo.City.ID, Name: "Mỹ Khê", Status: constants.AreaStatusActive}
	require.NoError(t, env.db.Create(&myKhe).Error)

	in := env.input(constants.ItemTypeTicket, `{"ticketKind":"adult"}`)
	areaID := myKhe.ID.String()
	in.AreaID = &areaID
	item, err := env.svc.Create(ctx, env.owner.ID, in)
	require.NoError(t, err)
	assert.Equal(t, myKhe.ID, item.AreaID)
	require.NotNil(t, item.Ticket)
	assert.Equal(t, "adult", item.Ticket.Kind)

	missing := uuid.NewString()
	in.AreaID = &missing
	_, err = env.svc.Create(ctx, env.owner.ID, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBNotFound))
}

func TestCreateItemRollsBackWhenExtensionFails(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	require.NoError(t, env.db.Migrator().DropTable(&models.Tour{}))

	_, err := env.svc.Create(context.Background(), env.owner.ID, env.input(constants.ItemTypeTour, ""))
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBError))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.BookableItem{}))
}

func TestListByProviderIsScoped(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	env.create(t, constants.ItemTypeTour, "")
	env.create(t, constants.ItemTypeTicket, "")
	stranger := seedUser(t, env.db, constants.RoleCodeAreaOwner)

	items, total, err := env.svc.ListByProvider(context.Background(), env.owner.ID, env.provider.ID, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	_, _, err = env.svc.ListByProvider(context.Background(), stranger.ID, env.provider.ID, dto.PageQuery{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
}

func TestDetailChecksOwnership(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	item := env.create(t, constants.ItemTypeAccommodation, `{"address":"Hoàng Sa"}`)
	stranger := seedUser(t, env.db, constants.RoleCodeAreaOwner)

	got, err := env.svc.Detail(context.Background(), env.owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Accommodation)
	assert.Equal(t, "Hoàng Sa", got.Accommodation.Address)

	_, err = env.svc.Detail(context.Background(), stranger.ID, item.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	_, err = env.svc.Detail(context.Background(), env.owner.ID, uuid.New())
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBNotFound))
}

func TestAddMedia(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	item := env.create(t, constants.ItemTypeTour, "")
	ctx := context.Background()

	_, err := env.svc.AddMedia(ctx, env.owner.ID, item.ID, constants.MediaTypeImage, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = env.svc.AddMedia(ctx, env.owner.ID, item.ID, "audio", &multipart.FileHeader{Filename: "a.mp3"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	media, err := env.svc.AddMedia(ctx, env.owner.ID, item.ID, "", &multipart.FileHeader{Filename: "beach.jpg"})
	require.NoError(t, err)
	assert.Equal(t, constants.MediaTypeImage, media.MediaType)
	assert.Equal(t, "https://cdn.test/bookable-items/beach.jpg", media.URL)

	got, err := env.svc.Detail(ctx, env.owner.ID, item.ID)
	require.NoError(t, err)
	assert.Len(t, got.Media, 1)
}

func TestAddRoomOnlyForAccommodation(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	ctx := context.Background()
	hotel := env.create(t, constants.ItemTypeAccommodation, "")
	tour := env.create(t, constants.ItemTypeTour, "")

	room, err := env.svc.AddRoom(ctx, env.owner.ID, hotel.ID, dto.RoomInput{Name: "Deluxe", MaxGuest: 2, Price: 900000})
	require.NoError(t, err)
	assert.Equal(t, hotel.ID, room.ItemID)

	_, err = env.svc.AddRoom(ctx, env.owner.ID, tour.ID, dto.RoomInput{Name: "Deluxe", MaxGuest: 2})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = env.svc.AddRoom(ctx, env.owner.ID, hotel.ID, dto.RoomInput{Name: "Deluxe", MaxGuest: -1})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	got, err := env.svc.Detail(ctx, env.owner.ID, hotel.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Accommodation)
	assert.Len(t, got.Accommodation.Rooms, 1)
}

func TestVehicleUpsertAndPositions(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	ctx := context.Background()
	bus := env.create(t, constants.ItemTypeVehicle, `{"code":"43B-001","maxGuest":29}`)
	tour := env.create(t, constants.ItemTypeTour, "")

	_, err := env.svc.UpsertVehicle(ctx, env.owner.ID, bus.ID, dto.VehicleInput{Code: "43B-002", MaxGuest: 45})
	require.NoError(t, err)
	_, err = env.svc.UpsertVehicle(ctx, env.owner.ID, bus.ID, dto.VehicleInput{Code: "43B-003", MaxGuest: 16})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Vehicle{}))

	var stored models.Vehicle
	require.NoError(t, env.db.First(&stored, "id_item = ?", bus.ID).Error)
	assert.Equal(t, "43B-003", stored.Code)
	assert.Equal(t, 16, stored.MaxGuest)

	_, err = env.svc.UpsertVehicle(ctx, env.owner.ID, tour.ID, dto.VehicleInput{Code: "x"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	pos, err := env.svc.AddPosition(ctx, env.owner.ID, bus.ID, dto.PositionInput{Code: "A1", Price: 250000})
	require.NoError(t, err)
	assert.Equal(t, "A1", pos.Code)

	_, err = env.svc.AddPosition(ctx, env.owner.ID, tour.ID, dto.PositionInput{Code: "A1"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	got, err := env.svc.Detail(ctx, env.owner.ID, bus.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Vehicle)
	assert.Len(t, got.Vehicle.Positions, 1)
}

func TestBrowseShowsOnlyActiveProviders(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	ctx := context.Background()
	env.create(t, constants.ItemTypeTour, "")
	env.create(t, constants.ItemTypeTicket, "")

	hidden := seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusInactive)
	require.NoError(t, env.db.Create(&models.BookableItem{
		ProviderID: hidden.ID,
		AreaID:     env.geo.Area.ID,
		ItemType:   constants.ItemTypeTour,
		Title:      "Ẩn",
	}).Error)

	items, total, err := env.svc.Browse(ctx, dto.BrowseItemsQuery{AreaID: env.geo.Area.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, it := range items {
		assert.Equal(t, env.provider.ID, it.ProviderID)
	}

	_, total, err = env.svc.Browse(ctx, dto.BrowseItemsQuery{AreaID: env.geo.Area.ID.String(), ItemType: "ticket"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = env.svc.Browse(ctx, dto.BrowseItemsQuery{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingParameter))

	_, _, err = env.svc.Browse(ctx, dto.BrowseItemsQuery{AreaID: env.geo.Area.ID.String(), ItemType: "cruise"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestSubRecordWritesCheckOwnership(t *testing.T) {
	env := newItemEnv(t, constants.ProviderStatusActive)
	ctx := context.Background()
	hotel := env.create(t, constants.ItemTypeAccommodation, "")
	bus := env.create(t, constants.ItemTypeVehicle, `{"code":"43B-001","maxGuest":29}`)
	stranger := seedUser(t, env.db, constants.RoleCodeAreaOwner)

	_, err := env.svc.AddMedia(ctx, stranger.ID, hotel.ID, constants.MediaTypeImage, &multipart.FileHeader{Filename: "x.jpg"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	_, err = env.svc.AddRoom(ctx, stranger.ID, hotel.ID, dto.RoomInput{Name: "Deluxe", MaxGuest: 2})
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	_, err = env.svc.UpsertVehicle(ctx, stranger.ID, bus.ID, dto.VehicleInput{Code: "43B-999", MaxGuest: 4})
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	_, err = env.svc.AddPosition(ctx, stranger.ID, bus.ID, dto.PositionInput{Code: "A1"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	assert.Equal(t, int64(0), countRows(t, env.db, &models.ItemMedia{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.AccommodationRoom{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Position{}))
	assert.Empty(t, env.storage.folders)

	var vehicle models.Vehicle
	require.NoError(t, env.db.First(&vehicle, "id_item = ?", bus.ID).Error)
	assert.Equal(t, "43B-001", vehicle.Code)
}
