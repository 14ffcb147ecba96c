// Package catalog serves the office and city listings the booking flow
// selects from. Reads go through a Redis cache; admin mutations invalidate it.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	cityRepo "sewakantor/database/repository/city"
	officeRepo "sewakantor/database/repository/office"
	"sewakantor/models"
	"sewakantor/utils"
)

var ErrOfficeNotFound = errors.New("office not found")
var ErrCityNotFound = errors.New("city not found")

// CatalogService exposes the office catalog to handlers.
type CatalogService interface {
	GetOffice(ctx context.Context, id string) (*models.Office, error)
	ListOffices(ctx context.Context, criteria officeRepo.OfficeSearchCriteria) ([]models.Office, int64, error)
	CreateOffice(ctx context.Context, office *models.Office) error
	UpdateOffice(ctx context.Context, office *models.Office) error
	DeleteOffice(ctx context.Context, id string) error

	ListCities(ctx context.Context) ([]models.City, error)
	CreateCity(ctx context.Context, city *models.City) error
	UpdateCity(ctx context.Context, city *models.City) error
	DeleteCity(ctx context.Context, id string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Offices officeRepo.OfficeRepository
	Cities  cityRepo.CityRepository
	// Cache is optional; when nil every read hits Mongo.
	Cache    *redis.Client
	CacheTTL time.Duration
}

func officeCacheKey(id string) string {
	return "catalog:office:" + id
}

// GetOffice returns one office, read through the cache, with its city joined.
func (s *DefaultCatalogService) GetOffice(ctx context.Context, id string) (*models.Office, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, officeCacheKey(id)).Result(); err == nil {
			var office models.Office
			if err := json.Unmarshal([]byte(data), &office); err == nil {
				return &office, nil
			}
			// Corrupt entry; fall through to Mongo and rewrite it.
		}
	}

	office, err := s.Offices.GetByID(id)
	if err != nil {
		return nil, ErrOfficeNotFound
	}
	s.joinCity(office)

	if s.Cache != nil {
		if data, err := json.Marshal(office); err == nil {
			if err := s.Cache.Set(ctx, officeCacheKey(id), data, s.CacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache office", zap.String("office_id", id), zap.Error(err))
			}
		}
	}
	return office, nil
}

func (s *DefaultCatalogService) ListOffices(ctx context.Context, criteria officeRepo.OfficeSearchCriteria) ([]models.Office, int64, error) {
	offices, total, err := s.Offices.Search(criteria)
	if err != nil {
		return nil, 0, err
	}

	// Join city names in one pass; the city list is tiny.
	cities, err := s.Cities.GetAll()
	if err == nil {
		byID := make(map[string]models.City, len(cities))
		for _, c := range cities {
			byID[c.ID] = c
		}
		for i := range offices {
			if c, ok := byID[offices[i].CityID]; ok {
				city := c
				offices[i].City = &city
			}
		}
	}
	return offices, total, nil
}

func (s *DefaultCatalogService) CreateOffice(ctx context.Context, office *models.Office) error {
	if office.ID == "" {
		office.ID = uuid.New().String()
	}
	if office.Slug == "" {
		office.Slug = Slugify(office.Name)
	}
	if office.Status == "" {
		office.Status = models.OfficeStatusAvailable
	}
	now := time.Now()
	office.CreatedAt = now
	office.UpdatedAt = now
	return s.Offices.Create(office)
}

func (s *DefaultCatalogService) UpdateOffice(ctx context.Context, office *models.Office) error {
	office.UpdatedAt = time.Now()
	if err := s.Offices.Update(office); err != nil {
		return err
	}
	s.invalidateOffice(ctx, office.ID)
	return nil
}

func (s *DefaultCatalogService) DeleteOffice(ctx context.Context, id string) error {
	if err := s.Offices.Delete(id); err != nil {
		return err
	}
	s.invalidateOffice(ctx, id)
	return nil
}

func (s *DefaultCatalogService) invalidateOffice(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, officeCacheKey(id)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate office cache", zap.String("office_id", id), zap.Error(err))
	}
}

func (s *DefaultCatalogService) joinCity(office *models.Office) {
	if office.CityID == "" {
		return
	}
	if city, err := s.Cities.GetByID(office.CityID); err == nil {
		office.City = city
	}
}

func (s *DefaultCatalogService) ListCities(ctx context.Context) ([]models.City, error) {
	return s.Cities.GetAll()
}

func (s *DefaultCatalogService) CreateCity(ctx context.Context, city *models.City) error {
	if city.ID == "" {
		city.ID = uuid.New().String()
	}
	if city.Slug == "" {
		city.Slug = Slugify(city.Name)
	}
	city.CreatedAt = time.Now()
	return s.Cities.Create(city)
}

func (s *DefaultCatalogService) UpdateCity(ctx context.Context, city *models.City) error {
	return s.Cities.Update(city)
}

func (s *DefaultCatalogService) DeleteCity(ctx context.Context, id string) error {
	return s.Cities.Delete(id)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL slug.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

var _ CatalogService = (*DefaultCatalogService)(nil)
