package swpcadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auroralab/skywatch/internal/config"
	"github.com/auroralab/skywatch/internal/entity"
	"github.com/stretchr/testify/require"
)

const currentPayload = `[
	["time_tag","Kp","observed","noaa_scale"],
	["2025-08-25 00:00:00.000","3.67","observed","None"],
	["2025-08-25 03:00:00.000","4.33","observed","None"],
	["2025-08-25 06:00:00.000","5.00","predicted","G1"]
]`

const forecastPayload = `[
	["time_tag","Kp","observed","noaa_scale"],
	["2025-08-25 21:00:00.000","4.00","observed","None"],
	["2025-08-26 00:00:00.000","5.33","predicted","G1"],
	["2025-08-26 03:00:00.000","6.00","predicted","G2"],
	["2025-08-27 00:00:00.000","3.00","predicted","None"],
	["2025-08-28 00:00:00.000","2.67","estimated","None"],
	["2025-08-29 00:00:00.000","7.33","predicted","G3"]
]`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// fixedNow is shortly after the newest observed sample in currentPayload.
var fixedNow = time.Date(2025, 8, 25, 8, 0, 0, 0, time.UTC)

func newTestAdapter(t *testing.T, currentURL, forecastURL string, offline bool) *swpcAdapter {
	t.Helper()

	cfg := &config.WeatherConfig{
		CurrentKpURL:   currentURL,
		ForecastURL:    forecastURL,
		UserAgent:      "test-agent",
		TimeoutSeconds: 5,
		StaleAfter:     "6h",
	}

	adapter := NewSWPCAdapter(cfg, offline, testLogger())
	adapter.now = func() time.Time { return fixedNow }

	return adapter
}

func newSWPCServer(t *testing.T, current, forecast string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/current", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		io.WriteString(w, current)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, forecast)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchHappyPath(t *testing.T) {
	srv := newSWPCServer(t, currentPayload, forecastPayload)
	adapter := newTestAdapter(t, srv.URL+"/current", srv.URL+"/forecast", false)

	snap := adapter.Fetch(context.Background())

	require.Equal(t, entity.FetchStatusOk, snap.Status)
	require.NotNil(t, snap.KpIndex)
	require.InDelta(t, 4.33, *snap.KpIndex, 0.001)
	require.Equal(t, time.Date(2025, 8, 25, 3, 0, 0, 0, time.UTC), snap.ObservedAt)
	require.Equal(t, ActivityLevelFor(4.33), snap.ActivityLevel)
	require.Equal(t, "G0", snap.GScale.Level)

	// Four future dates in the payload, truncated to three, ascending.
	require.Len(t, snap.Forecast, 3)
	require.Equal(t, time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC), snap.Forecast[0].Date)
	require.InDelta(t, 6.00, snap.Forecast[0].PeakKp, 0.001) // daily peak, not first sample
	require.Equal(t, time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), snap.Forecast[1].Date)
	require.Equal(t, time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC), snap.Forecast[2].Date)
}

func TestFetchOfflineModePerformsNoIO(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	t.Cleanup(srv.Close)

	adapter := newTestAdapter(t, srv.URL, srv.URL, true)

	for i := 0; i < 3; i++ {
		snap := adapter.Fetch(context.Background())

		require.Equal(t, entity.FetchStatusUnavailable, snap.Status)
		require.Nil(t, snap.KpIndex)
		require.Empty(t, snap.Forecast)
		require.Equal(t, sourceOffline, snap.Source)
		require.Equal(t, textUnavailable, snap.ActivityLevel)
	}

	require.Zero(t, hits)
}

func TestFetchServerErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	adapter := newTestAdapter(t, srv.URL, srv.URL, false)
	snap := adapter.Fetch(context.Background())

	require.Equal(t, entity.FetchStatusUnavailable, snap.Status)
	require.Nil(t, snap.KpIndex)
	require.Empty(t, snap.Forecast)
}

func TestFetchMalformedPayloadDegrades(t *testing.T) {
	srv := newSWPCServer(t, `{"not":"rows"}`, `garbage`)
	adapter := newTestAdapter(t, srv.URL+"/current", srv.URL+"/forecast", false)

	snap := adapter.Fetch(context.Background())

	require.Equal(t, entity.FetchStatusUnavailable, snap.Status)
	require.Nil(t, snap.KpIndex)
	require.Empty(t, snap.Forecast)
}

func TestFetchStaleObservation(t *testing.T) {
	srv := newSWPCServer(t, currentPayload, forecastPayload)
	adapter := newTestAdapter(t, srv.URL+"/current", srv.URL+"/forecast", false)
	adapter.now = func() time.Time { return fixedNow.Add(12 * time.Hour) }

	snap := adapter.Fetch(context.Background())

	require.Equal(t, entity.FetchStatusStale, snap.Status)
	require.NotNil(t, snap.KpIndex)
	require.InDelta(t, 4.33, *snap.KpIndex, 0.001)
}

func TestFetchForecastSurvivesCurrentFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/current", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, forecastPayload)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	adapter := newTestAdapter(t, srv.URL+"/current", srv.URL+"/forecast", false)
	snap := adapter.Fetch(context.Background())

	require.Equal(t, entity.FetchStatusUnavailable, snap.Status)
	require.Nil(t, snap.KpIndex)
	require.Len(t, snap.Forecast, 3)
}

func TestFetchNumericKpValues(t *testing.T) {
	payload := `[
		["time_tag","Kp","observed","noaa_scale"],
		["2025-08-25 03:00:00.000",4.33,"observed","None"]
	]`
	srv := newSWPCServer(t, payload, forecastPayload)
	adapter := newTestAdapter(t, srv.URL+"/current", srv.URL+"/forecast", false)

	snap := adapter.Fetch(context.Background())

	require.NotNil(t, snap.KpIndex)
	require.InDelta(t, 4.33, *snap.KpIndex, 0.001)
}
