package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/config"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var handlerDBSeq atomic.Int64

func setupTestHandler() (*Handler, *gorm.DB) {
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", handlerDBSeq.Add(1))
	db, _ := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	db.AutoMigrate(
		&models.Property{},
		&models.VisitorEvent{},
		&models.PropertyView{},
		&models.Booking{},
		&models.Advertisement{},
		&models.AdminUser{},
		&models.AuditLog{},
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		PublicBaseURL: "http://localhost:8080",
		SessionSecret: "test-secret-12345678901234567890123456789012",
		JWTSecret:     "jwt-secret-123456789012345678901234567890123",
	}

	audit := services.NewAuditService(db, logger)
	markers := services.NewMemoryMarkerStore(logger)
	tracker := services.NewTrackerService(db, logger, markers, nil)
	properties := services.NewPropertyService(db, audit, logger)
	bookings := services.NewBookingService(db, logger)
	ads := services.NewAdService(db, logger)
	admins := services.NewAdminService(db, logger)

	h := NewHandler(cfg, logger, db, properties, tracker, bookings, ads, admins, audit, nil)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

// adminToken mints a token the way AdminLogin would, skipping the password
// round trip.
func adminToken(h *Handler) string {
	token, _ := utils.GenerateAdminToken("admin-test-id", "admin@example.com", "admin", []byte(h.cfg.JWTSecret))
	return token
}

// fakeObjectStore records uploads and removals instead of talking to S3.
type fakeObjectStore struct {
	uploads []string
	removed [][]string
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, _ io.Reader, _ string) error {
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "https://images.example.com/" + key
}

func (f *fakeObjectStore) Remove(_ context.Context, keys []string) error {
	f.removed = append(f.removed, keys)
	return nil
}
