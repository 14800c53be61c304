package swpcadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/auroralab/skywatch/internal/common"
	"github.com/auroralab/skywatch/internal/config"
	"github.com/auroralab/skywatch/internal/entity"
)

const (
	statusObserved  = "observed"
	statusPredicted = "predicted"
	statusEstimated = "estimated"

	maxForecastDays = 3

	sourceSWPC    = "NOAA SWPC"
	sourceOffline = "Offline mode - no network access"

	textUnavailable = "Data unavailable"
)

// SWPC row timestamps come in a couple of shapes depending on the product.
var timeLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

type swpcAdapter struct {
	cfg     *config.WeatherConfig
	client  *http.Client
	offline bool
	now     func() time.Time

	log *slog.Logger
}

func NewSWPCAdapter(cfg *config.WeatherConfig, offline bool, log *slog.Logger) *swpcAdapter {
	return &swpcAdapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout()},
		offline: offline,
		now:     time.Now,
		log:     log.With(slog.String("item", "SWPCAdapter")),
	}
}

// Fetch retrieves the current planetary Kp index and a three day forecast
// from the SWPC JSON products. It always returns a usable snapshot: in
// offline mode or on any network or parse failure the corresponding fields
// degrade to their unavailable placeholders. One attempt per run, no retries.
func (a *swpcAdapter) Fetch(ctx context.Context) *entity.ConditionsSnapshot {
	if a.offline {
		a.log.Info("Skipping weather fetch (offline mode)")

		return a.unavailable(sourceOffline)
	}

	now := a.now()
	snap := a.unavailable(sourceSWPC)

	rows, err := a.fetchRows(ctx, a.cfg.CurrentKpURL)
	if err != nil {
		a.log.Warn("Cannot fetch current Kp data", slog.Any("error", err))
	} else if kp, observedAt, err := latestObserved(rows); err != nil {
		a.log.Warn("Cannot find observed Kp sample", slog.Any("error", err))
	} else {
		snap.KpIndex = &kp
		snap.ObservedAt = observedAt
		snap.ActivityLevel = ActivityLevelFor(kp)
		snap.GScale = GScaleFor(&kp)
		snap.Status = entity.FetchStatusOk

		if now.Sub(observedAt) > a.cfg.StaleAfterDuration() {
			snap.Status = entity.FetchStatusStale
			a.log.Warn("Observed Kp sample is stale", slog.Time("observed_at", observedAt))
		}

		a.log.Info("Fetched current Kp index", slog.Float64("kp", kp), slog.Time("observed_at", observedAt))
	}

	frows, err := a.fetchRows(ctx, a.cfg.ForecastURL)
	if err != nil {
		a.log.Warn("Cannot fetch Kp forecast", slog.Any("error", err))
	} else {
		snap.Forecast = forecastPeaks(frows, now)
		a.log.Info("Fetched Kp forecast", slog.Int("days", len(snap.Forecast)))
	}

	return snap
}

func (a *swpcAdapter) unavailable(source string) *entity.ConditionsSnapshot {
	return &entity.ConditionsSnapshot{
		ActivityLevel: textUnavailable,
		GScale:        GScaleFor(nil),
		Status:        entity.FetchStatusUnavailable,
		Source:        source,
	}
}

// fetchRows performs a single GET against an SWPC array-of-rows product and
// returns the data rows with the header row stripped.
func (a *swpcAdapter) fetchRows(ctx context.Context, url string) ([][]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}

	req.Header.Set("User-Agent", a.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	var rows [][]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("cannot decode payload: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("payload has no data rows")
	}

	return rows[1:], nil
}

// latestObserved picks the most recent row flagged "observed".
func latestObserved(rows [][]any) (float64, time.Time, error) {
	var (
		found bool
		kp    float64
		at    time.Time
	)

	for _, row := range rows {
		if len(row) < 3 || rowString(row, 2) != statusObserved {
			continue
		}

		ts, err := parseRowTime(rowString(row, 0))
		if err != nil {
			continue
		}

		value, err := rowFloat(row, 1)
		if err != nil {
			continue
		}

		if !found || ts.After(at) {
			found = true
			kp = value
			at = ts
		}
	}

	if !found {
		return 0, time.Time{}, common.ErrNoObservedData
	}

	return kp, at, nil
}

// forecastPeaks reduces predicted rows to at most three daily peak entries,
// strictly after the reference date, ordered by date ascending. Missing days
// are never fabricated.
func forecastPeaks(rows [][]any, ref time.Time) []entity.ForecastEntry {
	refDate := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	peaks := make(map[time.Time]float64)

	for _, row := range rows {
		if len(row) < 3 {
			continue
		}

		status := rowString(row, 2)
		if status != statusPredicted && status != statusEstimated {
			continue
		}

		ts, err := parseRowTime(rowString(row, 0))
		if err != nil {
			continue
		}

		value, err := rowFloat(row, 1)
		if err != nil {
			continue
		}

		date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		if !date.After(refDate) {
			continue
		}

		if peak, exists := peaks[date]; !exists || value > peak {
			peaks[date] = value
		}
	}

	dates := make([]time.Time, 0, len(peaks))
	for date := range peaks {
		dates = append(dates, date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if len(dates) > maxForecastDays {
		dates = dates[:maxForecastDays]
	}

	entries := make([]entity.ForecastEntry, 0, len(dates))
	for _, date := range dates {
		entries = append(entries, entity.ForecastEntry{
			Date:   date,
			PeakKp: peaks[date],
			Level:  ActivityLevelFor(peaks[date]),
		})
	}

	return entries
}

func parseRowTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse timestamp %q", value)
}

func rowString(row []any, i int) string {
	if i >= len(row) {
		return ""
	}

	s, _ := row[i].(string)

	return s
}

func rowFloat(row []any, i int) (float64, error) {
	if i >= len(row) {
		return 0, fmt.Errorf("row too short")
	}

	switch v := row[i].(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unexpected value type %T", v)
	}
}
