package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const (
	desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	mobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	tabletUA  = "Mozilla/5.0 (iPad; CPU OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
)

var testDBSeq atomic.Int64

// Each test gets its own named in-memory database; cache=shared keeps it
// visible across gorm's pooled connections.
func setupTestDB() *gorm.DB {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	err = db.AutoMigrate(
		&models.Property{}, &models.VisitorEvent{}, &models.PropertyView{},
		&models.Booking{}, &models.Advertisement{}, &models.AdminUser{}, &models.AuditLog{},
	)
	if err != nil {
		panic("failed to migrate database: " + err.Error())
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func setupTracker(t *testing.T, geo LocationProvider) (*TrackerService, *MemoryMarkerStore, *gorm.DB) {
	t.Helper()
	db := setupTestDB()
	logger := testLogger()
	markers := NewMemoryMarkerStore(logger)
	service := NewTrackerService(db, logger, markers, geo)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go service.Start(ctx)

	return service, markers, db
}

func waitForCount(t *testing.T, count func() int64, want int64) {
	t.Helper()
	assert.Eventually(t, func() bool { return count() == want }, time.Second, 10*time.Millisecond)
}

func visitorEventCount(db *gorm.DB) func() int64 {
	return func() int64 {
		var n int64
		db.Model(&models.VisitorEvent{}).Count(&n)
		return n
	}
}

func TestRecordPageVisit_StableVisitorID(t *testing.T) {
	service, _, db := setupTracker(t, nil)

	first := service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/", UserAgent: desktopUA})
	assert.NotEmpty(t, first)

	// Second page load in the same browser hands the id back
	second := service.RecordPageVisit(Visit{SessionID: "s1", VisitorID: first, PageURL: "https://example.com/properties", UserAgent: desktopUA})
	assert.Equal(t, first, second)

	waitForCount(t, visitorEventCount(db), 2)

	var events []models.VisitorEvent
	db.Find(&events)
	for _, e := range events {
		assert.NotNil(t, e.VisitorID)
		assert.Equal(t, first, *e.VisitorID)
	}
}

func TestRecordPageVisit_DedupWindow(t *testing.T) {
	service, markers, db := setupTracker(t, nil)

	current := time.Now()
	markers.now = func() time.Time { return current }

	visit := Visit{SessionID: "s1", PageURL: "https://example.com/", UserAgent: desktopUA}
	service.RecordPageVisit(visit)
	service.RecordPageVisit(visit)

	waitForCount(t, visitorEventCount(db), 1)

	// After 31 simulated seconds the same URL records again
	current = current.Add(31 * time.Second)
	service.RecordPageVisit(visit)

	waitForCount(t, visitorEventCount(db), 2)
}

func TestRecordPageVisit_DedupScopedBySession(t *testing.T) {
	service, _, db := setupTracker(t, nil)

	visit := Visit{SessionID: "s1", PageURL: "https://example.com/", UserAgent: desktopUA}
	service.RecordPageVisit(visit)

	// A different session (fresh tab) is an independent window
	visit.SessionID = "s2"
	service.RecordPageVisit(visit)

	waitForCount(t, visitorEventCount(db), 2)
}

func TestRecordPageVisit_BotExclusion(t *testing.T) {
	service, _, db := setupTracker(t, nil)

	bots := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Pingdom.com_bot_version_1.4",
		"Mozilla/5.0 (compatible; UptimeRobot/2.0)",
		"facebookexternalhit/1.1",
	}
	for i, ua := range bots {
		service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/" + string(rune('a'+i)), UserAgent: ua})
	}

	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 0, visitorEventCount(db)())
}

func TestRecordPageVisit_DeviceClassification(t *testing.T) {
	service, _, db := setupTracker(t, nil)

	service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/desktop", UserAgent: desktopUA})
	service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/mobile", UserAgent: mobileUA})
	// iPad UA carries a Mobile token too; tablet wins
	service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/tablet", UserAgent: tabletUA})

	waitForCount(t, visitorEventCount(db), 3)

	byPage := map[string]string{}
	var events []models.VisitorEvent
	db.Find(&events)
	for _, e := range events {
		byPage[e.PageURL] = e.DeviceType
	}

	assert.Equal(t, "desktop", byPage["https://example.com/desktop"])
	assert.Equal(t, "mobile", byPage["https://example.com/mobile"])
	assert.Equal(t, "tablet", byPage["https://example.com/tablet"])
}

func TestRecordPageVisit_ReferrerAndMaskedIP(t *testing.T) {
	service, _, db := setupTracker(t, nil)

	service.RecordPageVisit(Visit{
		SessionID: "s1",
		PageURL:   "https://example.com/",
		Referrer:  "https://google.com",
		UserAgent: desktopUA,
		IPAddress: "203.0.113.77",
	})
	service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/direct", UserAgent: desktopUA})

	waitForCount(t, visitorEventCount(db), 2)

	var withReferrer models.VisitorEvent
	db.First(&withReferrer, "page_url = ?", "https://example.com/")
	assert.NotNil(t, withReferrer.Referrer)
	assert.Equal(t, "https://google.com", *withReferrer.Referrer)
	assert.Equal(t, "203.0.113.0", withReferrer.IPAddress)

	var direct models.VisitorEvent
	db.First(&direct, "page_url = ?", "https://example.com/direct")
	assert.Nil(t, direct.Referrer)
}

type fakeGeo struct {
	loc   Location
	err   error
	calls atomic.Int32
}

func (f *fakeGeo) Lookup(ctx context.Context, ip string) (Location, error) {
	f.calls.Add(1)
	return f.loc, f.err
}

func TestRecordPageVisit_GeoEnrichment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		geo := &fakeGeo{loc: Location{City: "Limassol", Country: "Cyprus", IP: "203.0.113.77"}}
		service, _, db := setupTracker(t, geo)

		service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/", UserAgent: desktopUA, IPAddress: "203.0.113.77"})
		waitForCount(t, visitorEventCount(db), 1)

		var event models.VisitorEvent
		db.First(&event)
		assert.Equal(t, "Limassol", event.City)
		assert.Equal(t, "Cyprus", event.Country)
	})

	t.Run("Failure does not block recording", func(t *testing.T) {
		geo := &fakeGeo{err: context.DeadlineExceeded}
		service, _, db := setupTracker(t, geo)

		service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/", UserAgent: desktopUA, IPAddress: "203.0.113.77"})
		waitForCount(t, visitorEventCount(db), 1)

		var event models.VisitorEvent
		db.First(&event)
		assert.Empty(t, event.City)
		assert.Empty(t, event.Country)
	})

	t.Run("Blank IP skips the lookup", func(t *testing.T) {
		geo := &fakeGeo{loc: Location{City: "Limassol", Country: "Cyprus"}}
		service, _, db := setupTracker(t, geo)

		service.RecordPageVisit(Visit{SessionID: "s1", PageURL: "https://example.com/", UserAgent: desktopUA})
		waitForCount(t, visitorEventCount(db), 1)

		var event models.VisitorEvent
		db.First(&event)
		assert.Empty(t, event.City)
		assert.Empty(t, event.Country)
		assert.Equal(t, int32(0), geo.calls.Load())
	})
}

func TestRecordPropertyViewIntent_Throttle(t *testing.T) {
	service, markers, db := setupTracker(t, nil)

	current := time.Now()
	markers.now = func() time.Time { return current }

	viewCount := func() int64 {
		var n int64
		db.Model(&models.PropertyView{}).Count(&n)
		return n
	}

	service.RecordPropertyViewIntent("s1", "p1", desktopUA, "")
	current = current.Add(5 * time.Second)
	service.RecordPropertyViewIntent("s1", "p1", desktopUA, "")
	current = current.Add(5 * time.Second)
	service.RecordPropertyViewIntent("s1", "p1", desktopUA, "")

	waitForCount(t, viewCount, 1)

	// Different property, independent window
	service.RecordPropertyViewIntent("s1", "p2", desktopUA, "")
	waitForCount(t, viewCount, 2)

	// Same property again after the 60s window
	current = current.Add(61 * time.Second)
	service.RecordPropertyViewIntent("s1", "p1", desktopUA, "")
	waitForCount(t, viewCount, 3)
}

func TestClassifyDevice(t *testing.T) {
	assert.Equal(t, "desktop", classifyDevice(desktopUA))
	assert.Equal(t, "mobile", classifyDevice(mobileUA))
	assert.Equal(t, "tablet", classifyDevice(tabletUA))
	// Android without the Mobile token is a tablet
	assert.Equal(t, "tablet", classifyDevice("Mozilla/5.0 (Linux; Android 11; SM-T870) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0 Safari/537.36"))
	assert.Equal(t, "mobile", classifyDevice("Mozilla/5.0 (Linux; Android 11; Pixel 5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0 Mobile Safari/537.36"))
}

func TestIsBot(t *testing.T) {
	assert.True(t, isBot("Mozilla/5.0 (compatible; Googlebot/2.1)"))
	assert.True(t, isBot("pingdom.com_bot"))
	assert.True(t, isBot("site-monitor/1.0"))
	assert.False(t, isBot(desktopUA))
	assert.False(t, isBot(mobileUA))
}

func TestMaskIP(t *testing.T) {
	assert.Equal(t, "192.168.1.0", maskIP("192.168.1.55"))
	assert.Equal(t, "IPv6 (Masked)", maskIP("2001:0db8:85a3:0000:0000:8a2e:0370:7334"))
	assert.Equal(t, "localhost", maskIP("localhost"))
	assert.Equal(t, "", maskIP(""))
}
