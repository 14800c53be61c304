package entity

import "time"

type Category int

const (
	CategoryNightTimelapse Category = iota // AuroraCam_<Weekday>.mp4
	CategoryDayTimelapse                   // CloudCam_<Weekday>.mp4
	CategoryWeatherHistory                 // SpaceWeather_<Weekday>.gif
	CategorySnapshot                       // snapshot.jpg
)

func (c Category) String() string {
	return [...]string{"NightTimelapse", "DayTimelapse", "WeatherHistory", "Snapshot"}[c]
}

// MediaFile is one classified file from the target directory.
// Built once by the fsadapter and never mutated afterwards.
type MediaFile struct {
	ID            string // Stable hash of the path, used as DOM anchor
	Path          string // Absolute path on disk
	Name          string
	Category      Category
	Weekday       time.Weekday // Valid only when HasWeekday
	HasWeekday    bool         // False for snapshots
	Date          time.Time    // Most recent date <= ModTime whose weekday matches
	Size          int64
	ModTime       time.Time
	ThumbnailPath string // Relative path to <stem>.thumbnail.jpg, empty if none
}

// DayRecord merges all media belonging to one calendar day.
// Missing categories stay nil and render as "no data" placeholders.
type DayRecord struct {
	Weekday time.Weekday
	Date    time.Time
	Night   *MediaFile // AuroraCam timelapse
	Day     *MediaFile // CloudCam timelapse
	Weather *MediaFile // SpaceWeather history image
}
