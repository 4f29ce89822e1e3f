package region

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tukang-design/studio-api/internal/catalog"
)

func geoServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveGeoIPMalaysia(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_code":"MY"}`))
	})

	r := NewResolver(srv.URL, time.Second)
	got := r.Resolve(context.Background(), Hints{IP: "175.136.1.1"})
	if got != catalog.RegionMY {
		t.Errorf("expected MY, got %s", got)
	}
}

func TestResolveGeoIPOtherCountryIsInternational(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_code":"DE"}`))
	})

	// Language hints must not override a definitive geo lookup.
	r := NewResolver(srv.URL, time.Second)
	got := r.Resolve(context.Background(), Hints{IP: "88.1.1.1", AcceptLanguage: "ms-MY"})
	if got != catalog.RegionINT {
		t.Errorf("expected INT, got %s", got)
	}
}

func TestResolveGeoIPTimeoutFallsThrough(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_code":"MY"}`))
	})

	r := NewResolver(srv.URL, 50*time.Millisecond)
	got := r.Resolve(context.Background(), Hints{IP: "1.2.3.4", AcceptLanguage: "en-SG"})
	if got != catalog.RegionSG {
		t.Errorf("expected SG from language fallback, got %s", got)
	}
}

func TestResolveNonJSONContentTypeIsFailure(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html>captive portal</html>`))
	})

	r := NewResolver(srv.URL, time.Second)
	got := r.Resolve(context.Background(), Hints{IP: "1.2.3.4", Timezone: "Asia/Kuala_Lumpur"})
	if got != catalog.RegionMY {
		t.Errorf("expected MY from timezone fallback, got %s", got)
	}
}

func TestResolveNon200IsFailure(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	r := NewResolver(srv.URL, time.Second)
	got := r.Resolve(context.Background(), Hints{IP: "1.2.3.4"})
	if got != catalog.RegionINT {
		t.Errorf("expected INT default, got %s", got)
	}
}

func TestResolveLanguageTags(t *testing.T) {
	r := NewResolver("", time.Second)

	tests := []struct {
		header string
		want   catalog.Region
	}{
		{"ms", catalog.RegionMY},
		{"ms-MY,en;q=0.8", catalog.RegionMY},
		{"en-MY", catalog.RegionMY},
		{"en-SG,en;q=0.9", catalog.RegionSG},
		{"zh-SG", catalog.RegionSG},
		{"en-US,en;q=0.9", catalog.RegionINT},
		{"", catalog.RegionINT},
	}
	for _, tt := range tests {
		got := r.Resolve(context.Background(), Hints{AcceptLanguage: tt.header})
		if got != tt.want {
			t.Errorf("header %q: expected %s, got %s", tt.header, tt.want, got)
		}
	}
}

func TestResolveTimezones(t *testing.T) {
	r := NewResolver("", time.Second)

	if got := r.Resolve(context.Background(), Hints{Timezone: "Asia/Singapore"}); got != catalog.RegionSG {
		t.Errorf("expected SG, got %s", got)
	}
	if got := r.Resolve(context.Background(), Hints{Timezone: "Europe/Berlin"}); got != catalog.RegionINT {
		t.Errorf("expected INT, got %s", got)
	}
}

func TestResolveNoSignalsDefaultsInternational(t *testing.T) {
	r := NewResolver("", time.Second)
	if got := r.Resolve(context.Background(), Hints{}); got != catalog.RegionINT {
		t.Errorf("expected INT, got %s", got)
	}
}

func TestResolveUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calls := 0
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_code":"SG"}`))
	})

	r := NewResolver(srv.URL, time.Second, WithCache(cache, time.Hour))

	for i := 0; i < 3; i++ {
		if got := r.Resolve(context.Background(), Hints{IP: "103.1.1.1"}); got != catalog.RegionSG {
			t.Fatalf("expected SG, got %s", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single upstream lookup, got %d", calls)
	}
}
