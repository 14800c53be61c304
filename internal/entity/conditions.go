package entity

import "time"

type FetchStatus int

const (
	FetchStatusOk FetchStatus = iota
	FetchStatusUnavailable
	FetchStatusStale
)

func (s FetchStatus) String() string {
	return [...]string{"Ok", "Unavailable", "Stale"}[s]
}

// GScale is the NOAA geomagnetic storm scale derived from the Kp index.
type GScale struct {
	Level       string // G0..G5
	Description string
}

// ForecastEntry is one day of the predicted Kp forecast.
type ForecastEntry struct {
	Date   time.Time
	PeakKp float64
	Level  string // Activity level text for the predicted peak
}

// ConditionsSnapshot is the current-and-forecast space weather summary.
// Built once per run by the swpcadapter; KpIndex is nil when no observed
// value could be obtained.
type ConditionsSnapshot struct {
	KpIndex       *float64
	ActivityLevel string
	GScale        GScale
	ObservedAt    time.Time
	Forecast      []ForecastEntry // At most three entries, date ascending
	Status        FetchStatus
	Source        string
}

// Unavailable reports whether the snapshot carries no usable current data.
func (c *ConditionsSnapshot) Unavailable() bool {
	return c.Status == FetchStatusUnavailable
}
