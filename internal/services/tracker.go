package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/pkg/utils"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

const (
	// One VisitorEvent per page URL per session within this window.
	pageVisitWindow = 30 * time.Second
	// One PropertyView per property per session within this window.
	propertyViewWindow = 60 * time.Second
	// Budget for the optional geo lookup.
	geoLookupTimeout = 1500 * time.Millisecond
)

// Signatures checked case-insensitively against the user agent. Social
// preview fetchers and uptime monitors are excluded alongside crawlers.
var botSignatures = []string{
	"bot", "crawler", "spider", "pingdom", "uptime", "monitor",
	"facebookexternalhit", "whatsapp", "slurp", "headless", "preview",
}

// Tablet check runs before the generic mobile check: tablet user agents
// often carry a Mobile token too.
var tabletSignatures = []string{"ipad", "tablet", "kindle", "silk", "playbook"}

// Visit is one qualifying page navigation as seen by the tracking endpoint.
type Visit struct {
	SessionID string // dedup scope, analog of a browser tab session
	VisitorID string // existing visitor id, empty when the client has none
	PageURL   string
	Referrer  string
	UserAgent string
	IPAddress string
}

// TrackerService records page visits and property booking intent.
// Recording is fire-and-forget: the synchronous part resolves identity and
// claims the dedup marker, then the event is handed to a background worker
// that enriches and persists it. No failure ever reaches the caller.
type TrackerService struct {
	db      *gorm.DB
	logger  *slog.Logger
	markers MarkerStore
	geo     LocationProvider

	generateID func() string

	visitChannel chan models.VisitorEvent
	viewChannel  chan models.PropertyView
}

func NewTrackerService(db *gorm.DB, logger *slog.Logger, markers MarkerStore, geo LocationProvider) *TrackerService {
	return &TrackerService{
		db:           db,
		logger:       logger,
		markers:      markers,
		geo:          geo,
		generateID:   utils.GenerateVisitorID,
		visitChannel: make(chan models.VisitorEvent, 1000),
		viewChannel:  make(chan models.PropertyView, 1000),
	}
}

func (s *TrackerService) Start(ctx context.Context) {
	s.logger.Info("Tracker worker starting")
	for {
		select {
		case event := <-s.visitChannel:
			s.enrichVisit(&event)
			if err := s.db.Create(&event).Error; err != nil {
				s.logger.Error("Failed to record visitor event", "error", err)
			}
		case view := <-s.viewChannel:
			view.IPAddress = maskIP(view.IPAddress)
			if err := s.db.Create(&view).Error; err != nil {
				s.logger.Error("Failed to record property view", "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Tracker worker stopping")
			return
		}
	}
}

// RecordPageVisit records a page visit and returns the resolved visitor id,
// so the caller can hand it back to the client for persistence. The id is
// resolved even when the visit itself is deduplicated or filtered.
func (s *TrackerService) RecordPageVisit(v Visit) string {
	visitorID := v.VisitorID
	if visitorID == "" {
		visitorID = s.generateID()
	}

	// Marker is written before the asynchronous emit, closing the race
	// between two near-simultaneous invocations.
	if !s.markers.Claim(context.Background(), v.SessionID, "visit:"+v.PageURL, pageVisitWindow) {
		return visitorID
	}

	if isBot(v.UserAgent) {
		return visitorID
	}

	event := models.VisitorEvent{
		PageURL:    v.PageURL,
		UserAgent:  v.UserAgent,
		DeviceType: classifyDevice(v.UserAgent),
		VisitorID:  &visitorID,
		IPAddress:  v.IPAddress,
	}
	if v.Referrer != "" {
		referrer := v.Referrer
		event.Referrer = &referrer
	}

	select {
	case s.visitChannel <- event:
	default:
		s.logger.Warn("Visit channel full, dropping visitor event")
	}

	return visitorID
}

// RecordPropertyViewIntent records booking intent for a property, at most
// once per property per session within the throttle window.
func (s *TrackerService) RecordPropertyViewIntent(sessionID, propertyID, userAgent, ip string) {
	if !s.markers.Claim(context.Background(), sessionID, "view:"+propertyID, propertyViewWindow) {
		return
	}

	view := models.PropertyView{
		PropertyID: propertyID,
		UserAgent:  userAgent,
		IPAddress:  ip,
	}

	select {
	case s.viewChannel <- view:
	default:
		s.logger.Warn("View channel full, dropping property view")
	}
}

func (s *TrackerService) enrichVisit(event *models.VisitorEvent) {
	// A blank IP would make URL-based providers look up the server itself.
	if s.geo != nil && event.IPAddress != "" {
		ctx, cancel := context.WithTimeout(context.Background(), geoLookupTimeout)
		defer cancel()

		loc, err := s.geo.Lookup(ctx, event.IPAddress)
		if err != nil {
			s.logger.Warn("Geo lookup failed", "error", err)
		} else {
			event.City = loc.City
			event.Country = loc.Country
		}
	}

	// Mask IP for Privacy (GDPR)
	event.IPAddress = maskIP(event.IPAddress)
}

func isBot(uaString string) bool {
	lower := strings.ToLower(uaString)
	for _, sig := range botSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return user_agent.New(uaString).Bot()
}

func classifyDevice(uaString string) string {
	lower := strings.ToLower(uaString)
	for _, sig := range tabletSignatures {
		if strings.Contains(lower, sig) {
			return "tablet"
		}
	}
	if strings.Contains(lower, "android") && !strings.Contains(lower, "mobile") {
		return "tablet"
	}
	if user_agent.New(uaString).Mobile() {
		return "mobile"
	}
	return "desktop"
}

func maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
