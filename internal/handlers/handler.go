package handlers

import (
	"log/slog"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/config"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/repository"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	cfg             config.Config
	logger          *slog.Logger
	db              *gorm.DB
	propertyService *services.PropertyService
	trackerService  *services.TrackerService
	bookingService  *services.BookingService
	adService       *services.AdService
	adminService    *services.AdminService
	auditService    *services.AuditService
	objectStore     repository.ObjectStore
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	propertyService *services.PropertyService,
	trackerService *services.TrackerService,
	bookingService *services.BookingService,
	adService *services.AdService,
	adminService *services.AdminService,
	auditService *services.AuditService,
	objectStore repository.ObjectStore,
) *Handler {
	return &Handler{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		propertyService: propertyService,
		trackerService:  trackerService,
		bookingService:  bookingService,
		adService:       adService,
		adminService:    adminService,
		auditService:    auditService,
		objectStore:     objectStore,
	}
}
