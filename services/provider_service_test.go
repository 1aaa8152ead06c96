package services

import (
	"context"
	stderrors "errors"
	"mime/multipart"
	"testing"

	"travelhub/constants"
	"travelhub/dto"
	"travelhub/errors"
	"travelhub/models"
	"travelhub/services/metrics"
	"travelhub/services/notification"
	"travelhub/testutil"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type providerEnv struct {
	svc     *ProviderService
	db      *gorm.DB
	pub     *recordingPublisher
	storage *fakeStorage
	metrics *metrics.Metrics
	geo     geoFixture
	owner   models.User
}

func newProviderEnv(t *testing.T) providerEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	env := providerEnv{
		db:      db,
		pub:     &recordingPublisher{},
		storage: &fakeStorage{},
		metrics: metrics.New(prometheus.NewRegistry()),
		geo:     seedGeo(t, db, constants.AreaStatusActive),
		owner:   seedUser(t, db, constants.RoleCodeAreaOwner),
	}
	env.svc = NewProviderService(ProviderServiceOptions{
		DB:        db,
		Logger:    zap.NewNop(),
		Storage:   env.storage,
		Publisher: env.pub,
		Metrics:   env.metrics,
	})
	return env
}

func providerInput(areaID string) dto.CreateProviderInput {
	return dto.CreateProviderInput{Name: "Sơn Trà Travel", AreaID: areaID, Phone: "0905123456"}
}

func TestCreateProviderIsAlwaysPending(t *testing.T) {
	env := newProviderEnv(t)
	in := providerInput(env.geo.Area.ID.String())
	in.Status = constants.ProviderStatusActive
	in.Image = &multipart.FileHeader{Filename: "logo.png"}

	p, err := env.svc.Create(context.Background(), env.owner.ID, in)
	require.NoError(t, err)

	assert.Equal(t, constants.ProviderStatusPending, p.Status)
	assert.Equal(t, env.owner.ID, p.UserID)
	assert.Equal(t, "Sơn Trà", p.AreaName)
	assert.Equal(t, "Đà Nẵng", p.CityName)
	assert.Equal(t, "Việt Nam", p.CountryName)
	assert.Equal(t, "https://cdn.test/providers/logo.png", p.Image)

	assert.Equal(t, []string{notification.EventProviderSubmitted}, env.pub.names())
	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.ProvidersCreated))
}

func TestCreateProviderValidatesArea(t *testing.T) {
	env := newProviderEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.owner.ID, providerInput("bad"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))

	_, err = env.svc.Create(ctx, env.owner.ID, providerInput(uuid.NewString()))
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBNotFound))

	closed := models.Area{CityID: env.geo.City.ID, Name: "Bà Nà", Status: constants.AreaStatusInactive}
	require.NoError(t, env.db.Create(&closed).Error)
	_, err = env.svc.Create(ctx, env.owner.ID, providerInput(closed.ID.String()))
	assert.True(t, errors.HasCode(err, errors.ErrCodePolicyViolation))

	in := providerInput(env.geo.Area.ID.String())
	in.Phone = "12345"
	_, err = env.svc.Create(ctx, env.owner.ID, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))

	assert.Equal(t, int64(0), countRows(t, env.db, &models.Provider{}))
}

func TestListMineIsScopedToOwner(t *testing.T) {
	env := newProviderEnv(t)
	other := seedUser(t, env.db, constants.RoleCodeAreaOwner)
	seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusPending)
	seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusActive)
	seedProvider(t, env.db, other.ID, env.geo.Area.ID, constants.ProviderStatusPending)

	mine, total, err := env.svc.ListMine(context.Background(), env.owner.ID, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range mine {
		assert.Equal(t, env.owner.ID, p.UserID)
	}
}

func TestListForAdminDefaultsToPending(t *testing.T) {
	env := newProviderEnv(t)
	seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusPending)
	seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusActive)
	seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusInactive)
	ctx := context.Background()

	pending, total, err := env.svc.ListForAdmin(ctx, dto.ProviderListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, constants.ProviderStatusPending, pending[0].Status)

	_, total, err = env.svc.ListForAdmin(ctx, dto.ProviderListQuery{Status: constants.StatusAll})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	page, total, err := env.svc.ListForAdmin(ctx, dto.ProviderListQuery{Status: constants.StatusAll, PageQuery: dto.PageQuery{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)

	_, _, err = env.svc.ListForAdmin(ctx, dto.ProviderListQuery{Status: "rejected"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestReviewTransitions(t *testing.T) {
	env := newProviderEnv(t)
	ctx := context.Background()
	p := seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusPending)

	approved, err := env.svc.Review(ctx, p.ID, constants.ProviderStatusActive)
	require.NoError(t, err)
	assert.Equal(t, constants.ProviderStatusActive, approved.Status)
	assert.Contains(t, env.pub.names(), notification.EventProviderReviewed)

	_, err = env.svc.Review(ctx, p.ID, constants.ProviderStatusInactive)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))

	_, err = env.svc.Review(ctx, p.ID, constants.ProviderStatusPending)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = env.svc.Review(ctx, uuid.New(), constants.ProviderStatusActive)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBNotFound))

	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.ProviderReviews.WithLabelValues(constants.ProviderStatusActive)))
}

func TestRejectedProviderStaysRejected(t *testing.T) {
	env := newProviderEnv(t)
	ctx := context.Background()
	p := seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusPending)

	_, err := env.svc.Review(ctx, p.ID, constants.ProviderStatusInactive)
	require.NoError(t, err)

	_, err = env.svc.Review(ctx, p.ID, constants.ProviderStatusActive)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))

	updated, err := env.svc.AdminUpdate(ctx, p.ID, dto.AdminUpdateProviderInput{Status: strPtr(constants.ProviderStatusActive)})
	require.NoError(t, err)
	assert.Equal(t, constants.ProviderStatusActive, updated.Status)
}

func TestOwnerCannotTouchOthersProvider(t *testing.T) {
	env := newProviderEnv(t)
	ctx := context.Background()
	other := seedUser(t, env.db, constants.RoleCodeAreaOwner)
	p := seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusPending)

	_, err := env.svc.GetMine(ctx, other.ID, p.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	_, err = env.svc.UpdateMine(ctx, other.ID, p.ID, dto.UpdateProviderInput{Name: strPtr("Hijacked")})
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))

	var stored models.Provider
	require.NoError(t, env.db.First(&stored, "id = ?", p.ID).Error)
	assert.Equal(t, "Sơn Trà Travel", stored.Name)
}

func TestUpdateMineChangesOnlyAllowedFields(t *testing.T) {
	env := newProviderEnv(t)
	p := seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusPending)

	updated, err := env.svc.UpdateMine(context.Background(), env.owner.ID, p.ID, dto.UpdateProviderInput{
		Name:  strPtr("Sơn Trà Tours"),
		Image: &multipart.FileHeader{Filename: "new.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sơn Trà Tours", updated.Name)
	assert.Equal(t, "0905123456", updated.Phone)
	assert.Equal(t, "https://cdn.test/providers/new.png", updated.Image)
	assert.Equal(t, constants.ProviderStatusPending, updated.Status)
	assert.Equal(t, env.geo.Area.ID, updated.AreaID)
}

func TestAdminUpdateMovesArea(t *testing.T) {
	env := newProviderEnv(t)
	ctx := context.Background()
	p := seedProvider(t, env.db, env.owner.ID, env.geo.Area.ID, constants.ProviderStatusPending)
	hoiAn := models.Area{CityID: env.geo.City.ID, Name: "Hội An", Status: constants.AreaStatusActive}
	require.NoError(t, env.db.Create(&hoiAn).Error)

	updated, err := env.svc.AdminUpdate(ctx, p.ID, dto.AdminUpdateProviderInput{AreaID: strPtr(hoiAn.ID.String())})
	require.NoError(t, err)
	assert.Equal(t, hoiAn.ID, updated.AreaID)
	assert.Equal(t, "Hội An", updated.AreaName)

	_, err = env.svc.AdminUpdate(ctx, p.ID, dto.AdminUpdateProviderInput{AreaID: strPtr(uuid.NewString())})
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBNotFound))
}

func TestCreateProviderUploadsOnlyAfterInsert(t *testing.T) {
	env := newProviderEnv(t)
	duplicateOnCreate(t, env.db, "provider")
	in := providerInput(env.geo.Area.ID.String())
	in.Image = &multipart.FileHeader{Filename: "logo.png"}

	_, err := env.svc.Create(context.Background(), env.owner.ID, in)
	require.Error(t, err)
	assert.Empty(t, env.storage.folders)
	assert.Empty(t, env.pub.names())
}

func TestCreateProviderRollsBackWhenUploadFails(t *testing.T) {
	env := newProviderEnv(t)
	env.storage.err = stderrors.New("cloudinary down")
	in := providerInput(env.geo.Area.ID.String())
	in.Image = &multipart.FileHeader{Filename: "logo.png"}

	_, err := env.svc.Create(context.Background(), env.owner.ID, in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBError))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Provider{}))
	assert.Equal(t, 0.0, promtest.ToFloat64(env.metrics.ProvidersCreated))
}
