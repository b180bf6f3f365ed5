package services

import (
	"errors"
	"log/slog"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/config"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/pkg/utils"

	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAdminService(db *gorm.DB, logger *slog.Logger) *AdminService {
	return &AdminService{db: db, logger: logger}
}

// Authenticate verifies email+password against the admin_users table.
func (s *AdminService) Authenticate(email, password string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}

// EnsureBootstrapAdmin creates the configured admin account when the table
// has no row for it yet. A blank ADMIN_EMAIL disables bootstrapping.
func (s *AdminService) EnsureBootstrapAdmin(cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.AdminUser
	err := s.db.First(&existing, "email = ?", cfg.AdminEmail).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		Email:        cfg.AdminEmail,
		Name:         cfg.AdminName,
		PasswordHash: hash,
		Role:         "admin",
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	s.logger.Info("Bootstrap admin created", "email", admin.Email)
	return nil
}
