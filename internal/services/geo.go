package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/config"

	"github.com/oschwald/geoip2-golang"
)

// Location is a best-effort approximate location for a visitor.
type Location struct {
	City    string
	Country string
	IP      string
}

// LocationProvider resolves an approximate location for an IP address.
// Implementations must respect ctx deadlines; the tracker budgets lookups.
type LocationProvider interface {
	Lookup(ctx context.Context, ip string) (Location, error)
}

// NewLocationProvider picks the provider configured via GEO_PROVIDER.
// Returns nil when geo enrichment is disabled or the provider cannot be set
// up; enrichment is optional and must never block tracking.
func NewLocationProvider(cfg config.Config, logger *slog.Logger) LocationProvider {
	switch cfg.GeoProvider {
	case "ipapi":
		return NewIPAPIProvider(cfg.GeoAPIBaseURL, logger)
	case "maxmind":
		provider, err := NewMaxMindProvider(cfg.MaxMindDBPath, logger)
		if err != nil {
			logger.Warn("Geo: failed to open MaxMind database, lookups disabled", "path", cfg.MaxMindDBPath, "error", err)
			return nil
		}
		return provider
	default:
		return nil
	}
}

// IPAPIProvider looks up locations against an ipapi.co-compatible JSON
// endpoint.
type IPAPIProvider struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewIPAPIProvider(baseURL string, logger *slog.Logger) *IPAPIProvider {
	return &IPAPIProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Second},
		logger:  logger,
	}
}

func (p *IPAPIProvider) Lookup(ctx context.Context, ip string) (Location, error) {
	url := fmt.Sprintf("%s/%s/json/", p.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geo lookup returned status %d", resp.StatusCode)
	}

	var payload struct {
		City        string `json:"city"`
		CountryName string `json:"country_name"`
		IP          string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Location{}, fmt.Errorf("decode geo response: %w", err)
	}

	return Location{City: payload.City, Country: payload.CountryName, IP: payload.IP}, nil
}

type geoReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// MaxMindProvider resolves locations from a local GeoLite2 City database,
// for deployments that cannot call out to a lookup service.
type MaxMindProvider struct {
	reader geoReader
	logger *slog.Logger
}

func NewMaxMindProvider(path string, logger *slog.Logger) (*MaxMindProvider, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &MaxMindProvider{reader: reader, logger: logger}, nil
}

func (p *MaxMindProvider) Lookup(_ context.Context, ipStr string) (Location, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return Location{}, fmt.Errorf("invalid IP: %s", ipStr)
	}

	record, err := p.reader.City(ip)
	if err != nil {
		return Location{}, err
	}

	loc := Location{IP: ipStr}
	if name, ok := record.Country.Names["en"]; ok {
		loc.Country = name
	} else {
		loc.Country = record.Country.IsoCode
	}
	if name, ok := record.City.Names["en"]; ok {
		loc.City = name
	}

	return loc, nil
}

func (p *MaxMindProvider) Close() error {
	return p.reader.Close()
}
