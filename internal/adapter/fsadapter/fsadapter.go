package fsadapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/auroralab/skywatch/internal/common"
	"github.com/auroralab/skywatch/internal/config"
	"github.com/auroralab/skywatch/internal/entity"
	"github.com/auroralab/skywatch/internal/util"
	"github.com/spf13/afero"
)

const (
	prefixNight   = "AuroraCam_"
	prefixDay     = "CloudCam_"
	prefixWeather = "SpaceWeather_"

	extVideo = ".mp4"
	extImage = ".gif"

	snapshotStem  = "snapshot"
	snapshotExt   = ".jpg"
	thumbnailName = ".thumbnail.jpg"
)

type fsAdapter struct {
	fs        afero.Fs
	skipFiles map[string]struct{}

	log *slog.Logger
}

func NewFSAdapter(cfg *config.Config, log *slog.Logger) *fsAdapter {
	return NewFSAdapterWithFS(afero.NewOsFs(), cfg, log)
}

func NewFSAdapterWithFS(fs afero.Fs, cfg *config.Config, log *slog.Logger) *fsAdapter {
	skipFilesMap := make(map[string]struct{})
	skipFilesMap[cfg.Output] = struct{}{}
	skipFilesMap[cfg.Scanner.AboutFileName] = struct{}{}
	skipFilesMap[cfg.Scanner.TemplateFileName] = struct{}{}

	return &fsAdapter{
		fs:        fs,
		skipFiles: skipFilesMap,
		log:       log.With(slog.String("item", "FSAdapter")),
	}
}

// Scan reads the target directory and classifies every regular file that
// matches one of the four media shapes. Non-matching files are ignored,
// unparseable weekday tokens are skipped with a warning; only a missing or
// unreadable directory is an error.
func (a *fsAdapter) Scan(dirPath string) ([]*entity.MediaFile, error) {
	info, err := a.fs.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrDirectoryNotFound, dirPath)
		}

		return nil, fmt.Errorf("cannot stat target directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", common.ErrNotADirectory, dirPath)
	}

	entries, err := afero.ReadDir(a.fs, dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read target directory: %w", err)
	}

	var files []*entity.MediaFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if _, exists := a.skipFiles[name]; exists {
			a.log.Debug("Skip file", slog.String("name", name))

			continue
		}

		media, err := a.classify(dirPath, name, entry)
		if err != nil {
			a.log.Warn("Skip unparseable file", slog.String("name", name), slog.Any("error", err))

			continue
		}

		if media == nil {
			a.log.Debug("Unmatched file", slog.String("name", name))

			continue
		}

		a.log.Debug("Found media file",
			slog.String("name", name),
			slog.String("category", media.Category.String()),
			slog.Time("date", media.Date))
		files = append(files, media)
	}

	return files, nil
}

// classify returns nil for files that match none of the four shapes.
func (a *fsAdapter) classify(dirPath, name string, info os.FileInfo) (*entity.MediaFile, error) {
	path := filepath.Join(dirPath, name)

	media := &entity.MediaFile{
		ID:      util.GetIDFromString(&path),
		Path:    path,
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	var token string
	switch {
	case strings.HasPrefix(name, prefixNight) && strings.HasSuffix(name, extVideo):
		media.Category = entity.CategoryNightTimelapse
		token = strings.TrimSuffix(strings.TrimPrefix(name, prefixNight), extVideo)
	case strings.HasPrefix(name, prefixDay) && strings.HasSuffix(name, extVideo):
		media.Category = entity.CategoryDayTimelapse
		token = strings.TrimSuffix(strings.TrimPrefix(name, prefixDay), extVideo)
	case strings.HasPrefix(name, prefixWeather) && strings.HasSuffix(name, extImage):
		media.Category = entity.CategoryWeatherHistory
		token = strings.TrimSuffix(strings.TrimPrefix(name, prefixWeather), extImage)
	case isSnapshot(name):
		media.Category = entity.CategorySnapshot

		return media, nil
	default:
		return nil, nil
	}

	wd, err := ParseWeekdayToken(token)
	if err != nil {
		return nil, err
	}

	media.Weekday = wd
	media.HasWeekday = true
	media.Date = ResolveDate(media.ModTime, wd)

	if media.Category != entity.CategoryWeatherHistory {
		media.ThumbnailPath = a.findThumbnail(dirPath, name)
	}

	return media, nil
}

func isSnapshot(name string) bool {
	ext := filepath.Ext(name)

	return strings.TrimSuffix(name, ext) == snapshotStem && strings.EqualFold(ext, snapshotExt)
}

// findThumbnail looks for <stem>.thumbnail.jpg next to a camera video and
// returns its name relative to the target directory, or "".
func (a *fsAdapter) findThumbnail(dirPath, videoName string) string {
	stem := strings.TrimSuffix(videoName, filepath.Ext(videoName))
	thumbName := stem + thumbnailName

	info, err := a.fs.Stat(filepath.Join(dirPath, thumbName))
	if err != nil || info.IsDir() {
		return ""
	}

	return thumbName
}
