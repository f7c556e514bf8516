package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"event_hotels/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so vectors show up in the output
	observability.ObserveHTTP("/hotels", "GET", 200, 12*time.Millisecond)
	observability.ObserveSession("mysql", "hit")
	observability.ObserveEligibility("pass")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"event_hotels_http_requests_total",
		"event_hotels_session_lookups_total",
		`event_hotels_eligibility_checks_total{outcome="pass"}`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestNewLogger_Level(t *testing.T) {
	if got := observability.NewLogger("prod", "debug").GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}
	if got := observability.NewLogger("dev", "nonsense").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info fallback", got)
	}
}
