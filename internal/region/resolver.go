// Package region determines a visitor's pricing region on a best-effort
// basis. Detection is advisory: it only affects the displayed currency and
// never gates functionality, so every failure falls through to the next
// layer and ultimately to the international default.
package region

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/observability/metrics"
	"github.com/tukang-design/studio-api/pkg/logging"
)

var tracer = otel.Tracer("studio-api/region")

// Hints carry the request-derived signals available for detection.
type Hints struct {
	IP             string
	AcceptLanguage string
	Timezone       string
}

// Resolver resolves a pricing region from layered best-effort signals.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
	metrics    *metrics.BookingMetrics
	logger     *logging.Logger
}

// Option is a functional option for configuring the Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = client
	}
}

// WithCache enables caching of per-IP lookups in Redis.
func WithCache(client *redis.Client, ttl time.Duration) Option {
	return func(r *Resolver) {
		r.cache = client
		r.cacheTTL = ttl
	}
}

// WithMetrics records detection outcomes.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver querying the given geolocation base URL
// (e.g. "https://ipapi.co") with the given per-lookup timeout.
func NewResolver(baseURL string, timeout time.Duration, opts ...Option) *Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	r := &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the pricing region for the given hints. It never returns
// an error: each layer's failure is treated as "no signal".
func (r *Resolver) Resolve(ctx context.Context, hints Hints) catalog.Region {
	ctx, span := tracer.Start(ctx, "region.Resolve")
	defer span.End()

	if region, ok := r.lookupGeoIP(ctx, hints.IP); ok {
		span.SetAttributes(attribute.String("region", string(region)), attribute.String("layer", "geoip"))
		r.metrics.ObserveRegionDetection(string(region), "geoip")
		return region
	}
	if region, ok := regionFromLanguage(hints.AcceptLanguage); ok {
		span.SetAttributes(attribute.String("region", string(region)), attribute.String("layer", "language"))
		r.metrics.ObserveRegionDetection(string(region), "language")
		return region
	}
	if region, ok := regionFromTimezone(hints.Timezone); ok {
		span.SetAttributes(attribute.String("region", string(region)), attribute.String("layer", "timezone"))
		r.metrics.ObserveRegionDetection(string(region), "timezone")
		return region
	}
	span.SetAttributes(attribute.String("region", string(catalog.RegionINT)), attribute.String("layer", "default"))
	r.metrics.ObserveRegionDetection(string(catalog.RegionINT), "default")
	return catalog.RegionINT
}

type geoIPResponse struct {
	CountryCode string `json:"country_code"`
}

// lookupGeoIP queries the geolocation service once. A successful lookup is
// definitive: any country code outside MY/SG maps to INT.
func (r *Resolver) lookupGeoIP(ctx context.Context, ip string) (catalog.Region, bool) {
	ip = strings.TrimSpace(ip)
	if ip == "" || r.baseURL == "" {
		return "", false
	}

	if region, ok := r.cachedRegion(ctx, ip); ok {
		return region, true
	}

	start := time.Now()
	code, err := r.fetchCountryCode(ctx, ip)
	r.metrics.ObserveGeoIPLatency(time.Since(start).Seconds())
	if err != nil {
		r.logger.Debug("region: geoip lookup failed", "error", err, "ip", ip)
		return "", false
	}

	region := regionFromCountry(code)
	r.cacheRegion(ctx, ip, region)
	return region, true
}

func (r *Resolver) fetchCountryCode(ctx context.Context, ip string) (string, error) {
	url := fmt.Sprintf("%s/%s/json/", r.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("region: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("region: lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("region: lookup returned status %d", resp.StatusCode)
	}
	// A captive portal or error page without a JSON content type must be
	// treated as failure, not parsed.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return "", fmt.Errorf("region: unexpected content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("region: read response: %w", err)
	}
	var parsed geoIPResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("region: decode response: %w", err)
	}
	if strings.TrimSpace(parsed.CountryCode) == "" {
		return "", fmt.Errorf("region: response missing country code")
	}
	return parsed.CountryCode, nil
}

func (r *Resolver) cacheKey(ip string) string {
	return "region:ip:" + ip
}

func (r *Resolver) cachedRegion(ctx context.Context, ip string) (catalog.Region, bool) {
	if r.cache == nil {
		return "", false
	}
	val, err := r.cache.Get(ctx, r.cacheKey(ip)).Result()
	if err != nil {
		return "", false
	}
	region := catalog.Region(val)
	if !region.Valid() {
		return "", false
	}
	return region, true
}

func (r *Resolver) cacheRegion(ctx context.Context, ip string, region catalog.Region) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(ip), string(region), r.cacheTTL).Err(); err != nil {
		r.logger.Debug("region: cache write failed", "error", err, "ip", ip)
	}
}

func regionFromCountry(code string) catalog.Region {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "MY":
		return catalog.RegionMY
	case "SG":
		return catalog.RegionSG
	default:
		return catalog.RegionINT
	}
}

// regionFromLanguage inspects Accept-Language tags. Malay or Malaysian
// variants map to MY; Singapore English/Chinese map to SG. Anything else is
// no signal.
func regionFromLanguage(header string) (catalog.Region, bool) {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = strings.TrimSpace(tag[:i])
		}
		if tag == "" {
			continue
		}
		switch {
		case tag == "ms" || strings.HasPrefix(tag, "ms-"):
			return catalog.RegionMY, true
		case strings.HasSuffix(tag, "-my"):
			return catalog.RegionMY, true
		case tag == "en-sg" || tag == "zh-sg":
			return catalog.RegionSG, true
		}
	}
	return "", false
}

func regionFromTimezone(tz string) (catalog.Region, bool) {
	switch strings.TrimSpace(tz) {
	case "Asia/Kuala_Lumpur":
		return catalog.RegionMY, true
	case "Asia/Singapore":
		return catalog.RegionSG, true
	}
	return "", false
}
