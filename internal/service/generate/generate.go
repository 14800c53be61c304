package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/auroralab/skywatch/internal/common"
	"github.com/auroralab/skywatch/internal/config"
	"github.com/auroralab/skywatch/internal/entity"
	"github.com/spf13/afero"
)

type Scanner interface {
	Scan(dirPath string) ([]*entity.MediaFile, error)
}

type Assembler interface {
	Assemble(files []*entity.MediaFile) ([]entity.DayRecord, *entity.MediaFile)
}

type Fetcher interface {
	Fetch(ctx context.Context) *entity.ConditionsSnapshot
}

type AboutRenderer interface {
	Render(path string) (*entity.About, error)
}

type PageRenderer interface {
	Parse(page *entity.ArchivePage) (string, error)
}

type GenerateService struct {
	fs        afero.Fs
	cfg       *config.Config
	scanner   Scanner
	assembler Assembler
	fetcher   Fetcher
	about     AboutRenderer
	renderer  PageRenderer
	now       func() time.Time

	log *slog.Logger
}

func NewGenerateService(
	fs afero.Fs,
	cfg *config.Config,
	scanner Scanner,
	assembler Assembler,
	fetcher Fetcher,
	about AboutRenderer,
	renderer PageRenderer,
	log *slog.Logger,
) *GenerateService {
	return &GenerateService{
		fs:        fs,
		cfg:       cfg,
		scanner:   scanner,
		assembler: assembler,
		fetcher:   fetcher,
		about:     about,
		renderer:  renderer,
		now:       time.Now,
		log:       log.With(slog.String("item", "GenerateService")),
	}
}

// Run performs one full scan, fetch, assemble, render and write pass.
// Degraded weather data and an empty archive are successful runs; only a bad
// target directory, a broken template or an unwritable output are errors.
func (s *GenerateService) Run(ctx context.Context) error {
	files, err := s.scanner.Scan(s.cfg.TargetDir)
	if err != nil {
		return fmt.Errorf("cannot scan target directory: %w", err)
	}

	if len(files) == 0 {
		s.log.Warn("No media files found", slog.String("dir", s.cfg.TargetDir))
	}

	days, snapshot := s.assembler.Assemble(files)
	conditions := s.fetcher.Fetch(ctx)

	page := &entity.ArchivePage{
		Site: entity.Site{
			Name:     s.cfg.Site.Name,
			Subtitle: s.cfg.Site.Subtitle,
			Location: s.cfg.Site.Location,
		},
		Conditions:  conditions,
		Days:        days,
		Snapshot:    snapshot,
		GeneratedAt: s.now(),
	}

	s.attachAbout(page)

	content, err := s.renderer.Parse(page)
	if err != nil {
		return fmt.Errorf("cannot render page: %w", err)
	}

	outputPath := filepath.Join(s.cfg.TargetDir, s.cfg.Output)
	if err := s.writeOutput(outputPath, content); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	s.log.Info("Page generated",
		slog.String("output", outputPath),
		slog.Int("days", len(days)),
		slog.String("weather_status", conditions.Status.String()))

	return nil
}

func (s *GenerateService) attachAbout(page *entity.ArchivePage) {
	path := filepath.Join(s.cfg.TargetDir, s.cfg.Scanner.AboutFileName)

	about, err := s.about.Render(path)
	if err != nil {
		if errors.Is(err, common.ErrAboutDisabled) {
			s.log.Debug("About notes disabled", slog.String("path", path))
		} else {
			s.log.Warn("Cannot render about notes", slog.String("path", path), slog.Any("error", err))
		}

		return
	}

	if about == nil {
		return
	}

	page.AboutHTML = about.HTML
	page.AboutTitle = about.Title
}

// writeOutput writes the fully rendered page through a temp file in the same
// directory and renames it into place, so a failed run never leaves a
// half-written page behind.
func (s *GenerateService) writeOutput(outputPath, content string) error {
	dir := filepath.Dir(outputPath)

	tmp, err := afero.TempFile(s.fs, dir, ".skywatch-*.html")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)

		return fmt.Errorf("cannot write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)

		return fmt.Errorf("cannot close temp file: %w", err)
	}

	if err := s.fs.Rename(tmpName, outputPath); err != nil {
		s.fs.Remove(tmpName)

		return fmt.Errorf("cannot move page into place: %w", err)
	}

	return nil
}
