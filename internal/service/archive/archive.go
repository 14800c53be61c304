package archive

import (
	"log/slog"
	"sort"
	"time"

	"github.com/auroralab/skywatch/internal/entity"
)

type ArchiveService struct {
	log *slog.Logger
}

func NewArchiveService(log *slog.Logger) *ArchiveService {
	return &ArchiveService{
		log: log.With(slog.String("item", "ArchiveService")),
	}
}

// Assemble groups classified media files into one DayRecord per weekday
// present and picks the latest snapshot. Records come back sorted by
// resolved date, most recent first.
func (s *ArchiveService) Assemble(files []*entity.MediaFile) ([]entity.DayRecord, *entity.MediaFile) {
	records := make(map[time.Weekday]*entity.DayRecord)
	var snapshot *entity.MediaFile

	for _, file := range files {
		if file.Category == entity.CategorySnapshot {
			snapshot = newerFile(snapshot, file)

			continue
		}

		if !file.HasWeekday {
			continue
		}

		rec, exists := records[file.Weekday]
		if !exists {
			rec = &entity.DayRecord{Weekday: file.Weekday, Date: file.Date}
			records[file.Weekday] = rec
		}

		switch file.Category {
		case entity.CategoryNightTimelapse:
			rec.Night = newerFile(rec.Night, file)
		case entity.CategoryDayTimelapse:
			rec.Day = newerFile(rec.Day, file)
		case entity.CategoryWeatherHistory:
			rec.Weather = newerFile(rec.Weather, file)
		}

		// A stale not-yet-overwritten file may carry an older resolved
		// date than its siblings; the record shows the newest one.
		if file.Date.After(rec.Date) {
			rec.Date = file.Date
		}
	}

	days := make([]entity.DayRecord, 0, len(records))
	for _, rec := range records {
		days = append(days, *rec)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})

	s.log.Info("Assembled archive",
		slog.Int("files", len(files)),
		slog.Int("days", len(days)),
		slog.Bool("snapshot", snapshot != nil))

	return days, snapshot
}

// newerFile resolves two files competing for the same slot: the most recent
// modification time wins, ties go to the lexicographically smaller path.
func newerFile(current, candidate *entity.MediaFile) *entity.MediaFile {
	if current == nil {
		return candidate
	}

	if candidate.ModTime.After(current.ModTime) {
		return candidate
	}

	if candidate.ModTime.Equal(current.ModTime) && candidate.Path < current.Path {
		return candidate
	}

	return current
}
