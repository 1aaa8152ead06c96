package services

import (
	"context"
	stderrors "errors"
	"strings"

	"travelhub/constants"
	"travelhub/dto"
	"travelhub/errors"
	"travelhub/models"
	"travelhub/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GeographyService struct {
	db           *gorm.DB
	logger       *zap.Logger
	cache        *GeoCache
	deletePolicy string
}

type GeographyServiceOptions struct {
	DB           *gorm.DB
	Logger       *zap.Logger
	Cache        *GeoCache
	DeletePolicy string
}

func NewGeographyService(opts GeographyServiceOptions) *GeographyService {
	policy := opts.DeletePolicy
	if policy != constants.GeoDeleteCascade {
		policy = constants.GeoDeleteRestrict
	}
	return &GeographyService{
		db:           opts.DB,
		logger:       opts.Logger,
		cache:        opts.Cache,
		deletePolicy: policy,
	}
}

func newGeoList[T any](items []T, name func(T) string, q string) *dto.GeoList[T] {
	filtered, suggestion := filterByName(items, name, q)
	if filtered == nil {
		filtered = []T{}
	}
	return &dto.GeoList[T]{Items: filtered, Suggestion: suggestion}
}

func requiredParent(field, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.MissingParameter(field)
	}
	return validator.ParseUUID(field, value)
}

func requiredName(name *string) (string, error) {
	if name == nil {
		return "", validator.ValidateRequired("name", "", "Tên không được để trống")
	}
	n := strings.TrimSpace(*name)
	if err := validator.ValidateRequired("name", n, "Tên không được để trống"); err != nil {
		return "", err
	}
	return n, nil
}

func normalizeAreaStatus(status string) (string, error) {
	switch status {
	case constants.AreaStatusActive, constants.AreaStatusInactive:
		return status, nil
	}
	return "", errors.Validation("Trạng thái khu vực không hợp lệ",
		errors.FieldError{Field: "status", Message: "phải là active hoặc inactive"})
}

// ---- List ----

func (s *GeographyService) ListCountries(ctx context.Context, q string) (*dto.GeoList[models.Country], error) {
	var countries []models.Country
	if !s.cache.GetFromRedis(ctx, "countries", &countries) {
		if err := s.db.WithContext(ctx).Order("name").Find(&countries).Error; err != nil {
			return nil, errors.Internal(err)
		}
		s.cache.SetToRedis(ctx, "countries", countries)
	}
	return newGeoList(countries, func(c models.Country) string { return c.Name }, q), nil
}

// ListCities bắt buộc countryId
func (s *GeographyService) ListCities(ctx context.Context, countryID, q string) (*dto.GeoList[models.City], error) {
	id, err := requiredParent("countryId", countryID)
	if err != nil {
		return nil, err
	}

	key := "cities:" + id.String()
	var cities []models.City
	if !s.cache.GetFromRedis(ctx, key, &cities) {
		if err := s.db.WithContext(ctx).Where("country_id = ?", id).Order("name").Find(&cities).Error; err != nil {
			return nil, errors.Internal(err)
		}
		s.cache.SetToRedis(ctx, key, cities)
	}
	return newGeoList(cities, func(c models.City) string { return c.Name }, q), nil
}

// ListAreas bắt buộc cityId, mặc định chỉ lấy khu vực active
func (s *GeographyService) ListAreas(ctx context.Context, cityID, status, q string) (*dto.GeoList[models.Area], error) {
	id, err := requiredParent("cityId", cityID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = constants.AreaStatusActive
	}
	if status != constants.StatusAll {
		if status, err = normalizeAreaStatus(status); err != nil {
			return nil, err
		}
	}

	key := "areas:" + id.String() + ":" + status
	var areas []models.Area
	if !s.cache.GetFromRedis(ctx, key, &areas) {
		query := s.db.WithContext(ctx).Where("city_id = ?", id)
		if status != constants.StatusAll {
			query = query.Where("status = ?", status)
		}
		if err := query.Order("name").Find(&areas).Error; err != nil {
			return nil, errors.Internal(err)
		}
		s.cache.SetToRedis(ctx, key, areas)
	}
	return newGeoList(areas, func(a models.Area) string { return a.Name }, q), nil
}

// ListPointsOfInterest bắt buộc areaId
func (s *GeographyService) ListPointsOfInterest(ctx context.Context, areaID, q string) (*dto.GeoList[models.PointOfInterest], error) {
	id, err := requiredParent("areaId", areaID)
	if err != nil {
		return nil, err
	}

	key := "pois:" + id.String()
	var pois []models.PointOfInterest
	if !s.cache.GetFromRedis(ctx, key, &pois) {
		if err := s.db.WithContext(ctx).Where("area_id = ?", id).Order("name").Find(&pois).Error; err != nil {
			return nil, errors.Internal(err)
		}
		s.cache.SetToRedis(ctx, key, pois)
	}
	return newGeoList(pois, func(p models.PointOfInterest) string { return p.Name }, q), nil
}

// ---- Create ----

func (s *GeographyService) CreateCountry(ctx context.Context, in dto.CountryInput) (*models.Country, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	country := models.Country{Name: name, Attribute: datatypes.JSONMap(in.Attribute)}
	if in.Code != nil {
		country.Code = strings.TrimSpace(*in.Code)
	}
	if err := s.db.WithContext(ctx).Create(&country).Error; err != nil {
		return nil, storeError(err, geoDuplicateMessage)
	}
	s.cache.Invalidate(ctx)
	return &country, nil
}

func (s *GeographyService) CreateCity(ctx context.Context, in dto.CityInput) (*models.City, error) {
	countryID, err := s.parentRef(ctx, "countryId", in.CountryID, &models.Country{}, "Không tìm thấy quốc gia")
	if err != nil {
		return nil, err
	}
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	city := models.City{CountryID: countryID, Name: name, Attribute: datatypes.JSONMap(in.Attribute)}
	if err := s.db.WithContext(ctx).Create(&city).Error; err != nil {
		return nil, storeError(err, geoDuplicateMessage)
	}
	s.cache.Invalidate(ctx)
	return &city, nil
}

func (s *GeographyService) CreateArea(ctx context.Context, in dto.AreaInput) (*models.Area, error) {
	cityID, err := s.parentRef(ctx, "cityId", in.CityID, &models.City{}, "Không tìm thấy thành phố")
	if err != nil {
		return nil, err
	}
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	status := constants.AreaStatusActive
	if in.Status != nil {
		if status, err = normalizeAreaStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	area := models.Area{CityID: cityID, Name: name, Status: status, Attribute: datatypes.JSONMap(in.Attribute)}
	if err := s.db.WithContext(ctx).Create(&area).Error; err != nil {
		return nil, storeError(err, geoDuplicateMessage)
	}
	s.cache.Invalidate(ctx)
	return &area, nil
}

func (s *GeographyService) CreatePointOfInterest(ctx context.Context, in dto.PointOfInterestInput) (*models.PointOfInterest, error) {
	areaID, err := s.parentRef(ctx, "areaId", in.AreaID, &models.Area{}, "Không tìm thấy khu vực")
	if err != nil {
		return nil, err
	}
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	poi := models.PointOfInterest{AreaID: areaID, Name: name, PoiType: datatypes.JSONMap(in.PoiType)}
	if err := s.db.WithContext(ctx).Create(&poi).Error; err != nil {
		return nil, storeError(err, geoDuplicateMessage)
	}
	s.cache.Invalidate(ctx)
	return &poi, nil
}

// ---- Update (patch) ----

func (s *GeographyService) UpdateCountry(ctx context.Context, id uuid.UUID, in dto.CountryInput) (*models.Country, error) {
	var country models.Country
	if err := s.load(ctx, &country, id, "Không tìm thấy quốc gia"); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := requiredName(in.Name)
		if err != nil {
			return nil, err
		}
		country.Name = name
	}
	if in.Code != nil {
		country.Code = strings.TrimSpace(*in.Code)
	}
	if in.Attribute != nil {
		country.Attribute = datatypes.JSONMap(in.Attribute)
	}
	return &country, s.save(ctx, &country)
}

func (s *GeographyService) UpdateCity(ctx context.Context, id uuid.UUID, in dto.CityInput) (*models.City, error) {
	var city models.City
	if err := s.load(ctx, &city, id, "Không tìm thấy thành phố"); err != nil {
		return nil, err
	}
	if in.CountryID != nil {
		countryID, err := s.parentRef(ctx, "countryId", in.CountryID, &models.Country{}, "Không tìm thấy quốc gia")
		if err != nil {
			return nil, err
		}
		city.CountryID = countryID
	}
	if in.Name != nil {
		name, err := requiredName(in.Name)
		if err != nil {
			return nil, err
		}
		city.Name = name
	}
	if in.Attribute != nil {
		city.Attribute = datatypes.JSONMap(in.Attribute)
	}
	return &city, s.save(ctx, &city)
}

func (s *GeographyService) UpdateArea(ctx context.Context, id uuid.UUID, in dto.AreaInput) (*models.Area, error) {
	var area models.Area
	if err := s.load(ctx, &area, id, "Không tìm thấy khu vực"); err != nil {
		return nil, err
	}
	if in.CityID != nil {
		cityID, err := s.parentRef(ctx, "cityId", in.CityID, &models.City{}, "Không tìm thấy thành phố")
		if err != nil {
			return nil, err
		}
		area.CityID = cityID
	}
	if in.Name != nil {
		name, err := requiredName(in.Name)
		if err != nil {
			return nil, err
		}
		area.Name = name
	}
	if in.Status != nil {
		status, err := normalizeAreaStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		area.Status = status
	}
	if in.Attribute != nil {
		area.Attribute = datatypes.JSONMap(in.Attribute)
	}
	return &area, s.save(ctx, &area)
}

func (s *GeographyService) UpdatePointOfInterest(ctx context.Context, id uuid.UUID, in dto.PointOfInterestInput) (*models.PointOfInterest, error) {
	var poi models.PointOfInterest
	if err := s.load(ctx, &poi, id, "Không tìm thấy địa điểm"); err != nil {
		return nil, err
	}
	if in.AreaID != nil {
		areaID, err := s.parentRef(ctx, "areaId", in.AreaID, &models.Area{}, "Không tìm thấy khu vực")
		if err != nil {
			return nil, err
		}
		poi.AreaID = areaID
	}
	if in.Name != nil {
		name, err := requiredName(in.Name)
		if err != nil {
			return nil, err
		}
		poi.Name = name
	}
	if in.PoiType != nil {
		poi.PoiType = datatypes.JSONMap(in.PoiType)
	}
	return &poi, s.save(ctx, &poi)
}

// ---- Delete ----

// DeleteCountry theo delete policy: restrict từ chối khi còn thành phố,
// cascade xoá luôn thành phố, khu vực và địa điểm bên dưới.
func (s *GeographyService) DeleteCountry(ctx context.Context, id uuid.UUID) error {
	if err := s.load(ctx, &models.Country{}, id, "Không tìm thấy quốc gia"); err != nil {
		return err
	}

	var cityIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.City{}).Where("country_id = ?", id).Pluck("id", &cityIDs).Error; err != nil {
		return errors.Internal(err)
	}
	if s.deletePolicy == constants.GeoDeleteRestrict && len(cityIDs) > 0 {
		return errors.Conflict("Quốc gia vẫn còn thành phố")
	}

	areaIDs, err := s.areaIDsOfCities(ctx, cityIDs)
	if err != nil {
		return err
	}
	return s.cascadeDelete(ctx, areaIDs, cityIDs, func(tx *gorm.DB) error {
		return tx.Delete(&models.Country{}, "id = ?", id).Error
	})
}

func (s *GeographyService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if err := s.load(ctx, &models.City{}, id, "Không tìm thấy thành phố"); err != nil {
		return err
	}

	areaIDs, err := s.areaIDsOfCities(ctx, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if s.deletePolicy == constants.GeoDeleteRestrict && len(areaIDs) > 0 {
		return errors.Conflict("Thành phố vẫn còn khu vực")
	}
	return s.cascadeDelete(ctx, areaIDs, []uuid.UUID{id}, nil)
}

func (s *GeographyService) DeleteArea(ctx context.Context, id uuid.UUID) error {
	if err := s.load(ctx, &models.Area{}, id, "Không tìm thấy khu vực"); err != nil {
		return err
	}

	if s.deletePolicy == constants.GeoDeleteRestrict {
		var pois int64
		if err := s.db.WithContext(ctx).Model(&models.PointOfInterest{}).Where("area_id = ?", id).Count(&pois).Error; err != nil {
			return errors.Internal(err)
		}
		if pois > 0 {
			return errors.Conflict("Khu vực vẫn còn địa điểm")
		}
	}
	return s.cascadeDelete(ctx, []uuid.UUID{id}, nil, nil)
}

func (s *GeographyService) DeletePointOfInterest(ctx context.Context, id uuid.UUID) error {
	if err := s.load(ctx, &models.PointOfInterest{}, id, "Không tìm thấy địa điểm"); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.PointOfInterest{}, "id = ?", id).Error; err != nil {
		return errors.Internal(err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// cascadeDelete xoá địa điểm, khu vực, thành phố trong một transaction.
// Provider và bookable item không bao giờ bị xoá kèm nên khu vực còn được
// tham chiếu thì từ chối.
func (s *GeographyService) cascadeDelete(ctx context.Context, areaIDs, cityIDs []uuid.UUID, last func(tx *gorm.DB) error) error {
	if err := s.ensureAreasUnreferenced(ctx, areaIDs); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(areaIDs) > 0 {
			if err := tx.Where("area_id IN ?", areaIDs).Delete(&models.PointOfInterest{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", areaIDs).Delete(&models.Area{}).Error; err != nil {
				return err
			}
		}
		if len(cityIDs) > 0 {
			if err := tx.Where("id IN ?", cityIDs).Delete(&models.City{}).Error; err != nil {
				return err
			}
		}
		if last != nil {
			return last(tx)
		}
		return nil
	})
	if err != nil {
		return errors.Internal(err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *GeographyService) ensureAreasUnreferenced(ctx context.Context, areaIDs []uuid.UUID) error {
	if len(areaIDs) == 0 {
		return nil
	}
	var providers int64
	if err := s.db.WithContext(ctx).Model(&models.Provider{}).Where("area_id IN ?", areaIDs).Count(&providers).Error; err != nil {
		return errors.Internal(err)
	}
	if providers > 0 {
		return errors.Conflict("Khu vực đang có nhà cung cấp")
	}
	var items int64
	if err := s.db.WithContext(ctx).Model(&models.BookableItem{}).Where("id_area IN ?", areaIDs).Count(&items).Error; err != nil {
		return errors.Internal(err)
	}
	if items > 0 {
		return errors.Conflict("Khu vực đang có dịch vụ")
	}
	return nil
}

func (s *GeographyService) areaIDsOfCities(ctx context.Context, cityIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(cityIDs) == 0 {
		return nil, nil
	}
	var areaIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Area{}).Where("city_id IN ?", cityIDs).Pluck("id", &areaIDs).Error; err != nil {
		return nil, errors.Internal(err)
	}
	return areaIDs, nil
}

// parentRef parse id cha bắt buộc và kiểm tra tồn tại
func (s *GeographyService) parentRef(ctx context.Context, field string, value *string, model interface{}, notFound string) (uuid.UUID, error) {
	raw := ""
	if value != nil {
		raw = *value
	}
	id, err := validator.ParseUUID(field, raw)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.load(ctx, model, id, notFound); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *GeographyService) load(ctx context.Context, dest interface{}, id uuid.UUID, notFound string) error {
	if err := s.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound(notFound)
		}
		return errors.Internal(err)
	}
	return nil
}

func (s *GeographyService) save(ctx context.Context, value interface{}) error {
	if err := s.db.WithContext(ctx).Save(value).Error; err != nil {
		return storeError(err, geoDuplicateMessage)
	}
	s.cache.Invalidate(ctx)
	return nil
}

const geoDuplicateMessage = "Dữ liệu địa lý đã tồn tại"

// storeError chuyển lỗi unique constraint (gorm.ErrDuplicatedKey khi bật TranslateError) thành 409
func storeError(err error, duplicateMessage string) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Duplicate(duplicateMessage, err)
	}
	return errors.Internal(err)
}
