package services

import (
	"log/slog"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"

	"gorm.io/gorm"
)

type AdService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAdService(db *gorm.DB, logger *slog.Logger) *AdService {
	return &AdService{db: db, logger: logger}
}

// ListActive returns active advertisements for a placement, newest first.
func (s *AdService) ListActive(placement string) ([]models.Advertisement, error) {
	q := s.db.Where("is_active = ?", true).Order("created_at DESC")
	if placement != "" {
		q = q.Where("placement = ?", placement)
	}

	var ads []models.Advertisement
	if err := q.Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// ListAll returns every advertisement for the admin screen.
func (s *AdService) ListAll() ([]models.Advertisement, error) {
	var ads []models.Advertisement
	if err := s.db.Order("created_at DESC").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

func (s *AdService) Create(ad *models.Advertisement) error {
	return s.db.Create(ad).Error
}

func (s *AdService) Update(id string, updates map[string]interface{}) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := s.db.First(&ad, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&ad).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &ad, nil
}

func (s *AdService) Delete(id string) error {
	result := s.db.Delete(&models.Advertisement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
