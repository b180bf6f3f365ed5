package services

import (
	"errors"
	"log/slog"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"

	"gorm.io/gorm"
)

// PropertyFilters is the browse-page filter set. A nil/empty field imposes
// no constraint on that dimension.
type PropertyFilters struct {
	City         string
	RentalPeriod string // short-term, long-term
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MaxBedrooms  *int
	Furnished    *bool
}

// PropertyFilterScope translates filters into query constraints. Pure
// composition, no I/O, no validation: an inverted range (min > max) yields
// an empty result set, not an error.
//
// Furnished only constrains when true. There is deliberately no way to
// query "unfurnished only" through this filter shape; flagged for product
// clarification, do not "fix" silently.
func PropertyFilterScope(f PropertyFilters, onlyAvailable bool) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if onlyAvailable {
			q = q.Where("available = ?", true)
		}
		if f.City != "" {
			q = q.Where("city = ?", f.City)
		}
		if f.RentalPeriod != "" {
			q = q.Where("rental_period = ?", f.RentalPeriod)
		}
		if f.PropertyType != "" {
			q = q.Where("property_type = ?", f.PropertyType)
		}
		if f.MinPrice != nil {
			q = q.Where("price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			q = q.Where("price <= ?", *f.MaxPrice)
		}
		if f.MinBedrooms != nil {
			q = q.Where("bedrooms >= ?", *f.MinBedrooms)
		}
		if f.MaxBedrooms != nil {
			q = q.Where("bedrooms <= ?", *f.MaxBedrooms)
		}
		if f.Furnished != nil && *f.Furnished {
			q = q.Where("furnished = ?", true)
		}
		return q
	}
}

// PropertyUpdate is a partial update; nil fields are left untouched.
type PropertyUpdate struct {
	Title        *string
	PropertyType *string
	Bedrooms     *int
	Bathrooms    *int
	Price        *float64
	RentalPeriod *string
	City         *string
	Area         *string
	Furnished    *bool
	Amenities    *[]string
	Description  *string
	Images       *[]string
	Available    *bool
}

type PropertyService struct {
	db           *gorm.DB
	auditService *AuditService
	logger       *slog.Logger
}

func NewPropertyService(db *gorm.DB, auditService *AuditService, logger *slog.Logger) *PropertyService {
	return &PropertyService{db: db, auditService: auditService, logger: logger}
}

// List returns properties matching the filters, newest first. The public
// browse page passes onlyAvailable=true; the admin listing passes false and
// sees every property.
func (s *PropertyService) List(filters PropertyFilters, onlyAvailable bool) ([]models.Property, error) {
	var properties []models.Property
	err := s.db.Scopes(PropertyFilterScope(filters, onlyAvailable)).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *PropertyService) Get(id string) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *PropertyService) Create(property *models.Property, adminID *string, ip string) error {
	if err := s.db.Create(property).Error; err != nil {
		return err
	}

	s.auditService.LogAction(adminID, "CREATE_PROPERTY", property.ID, map[string]interface{}{
		"title": property.Title,
		"city":  property.City,
	}, ip)

	return nil
}

func (s *PropertyService) Update(id string, update PropertyUpdate, adminID *string, ip string) (*models.Property, error) {
	property, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	applyPropertyUpdate(property, update)

	if err := s.db.Save(property).Error; err != nil {
		return nil, err
	}

	s.auditService.LogAction(adminID, "UPDATE_PROPERTY", property.ID, nil, ip)

	return property, nil
}

func (s *PropertyService) Delete(id string, adminID *string, ip string) error {
	result := s.db.Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	s.auditService.LogAction(adminID, "DELETE_PROPERTY", id, nil, ip)

	return nil
}

func applyPropertyUpdate(p *models.Property, u PropertyUpdate) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.PropertyType != nil {
		p.PropertyType = *u.PropertyType
	}
	if u.Bedrooms != nil {
		p.Bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		p.Bathrooms = *u.Bathrooms
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.RentalPeriod != nil {
		p.RentalPeriod = *u.RentalPeriod
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.Area != nil {
		p.Area = *u.Area
	}
	if u.Furnished != nil {
		p.Furnished = *u.Furnished
	}
	if u.Amenities != nil {
		p.Amenities = *u.Amenities
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Images != nil {
		p.Images = *u.Images
	}
	if u.Available != nil {
		p.Available = *u.Available
	}
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
