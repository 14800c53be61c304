package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/auroralab/skywatch/internal/adapter/fsadapter"
	"github.com/auroralab/skywatch/internal/adapter/mdadapter"
	"github.com/auroralab/skywatch/internal/adapter/swpcadapter"
	"github.com/auroralab/skywatch/internal/adapter/tpladapter"
	"github.com/auroralab/skywatch/internal/config"
	"github.com/auroralab/skywatch/internal/service/archive"
	"github.com/auroralab/skywatch/internal/service/generate"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

type App struct {
	cfg *config.Config
	log *slog.Logger
}

func New(cfg *config.Config) *App {
	lo := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Verbose {
		lo.Level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, lo)).
		With(slog.String("run_id", uuid.NewString()))

	return &App{
		cfg: cfg,
		log: log,
	}
}

// Run wires the adapters and services together and performs one generation
// pass over the target directory.
func (a *App) Run(ctx context.Context) error {
	fs := afero.NewOsFs()

	scanner := fsadapter.NewFSAdapterWithFS(fs, a.cfg, a.log)
	fetcher := swpcadapter.NewSWPCAdapter(&a.cfg.Weather, a.cfg.NoWeather, a.log)
	about := mdadapter.NewMDAdapterWithFS(fs, a.log)
	assembler := archive.NewArchiveService(a.log)

	renderer, err := tpladapter.NewTplAdapterWithFS(fs, a.templateOverride(fs))
	if err != nil {
		return err
	}

	gen := generate.NewGenerateService(fs, a.cfg, scanner, assembler, fetcher, about, renderer, a.log)

	return gen.Run(ctx)
}

// templateOverride returns the path of a custom template in the target
// directory, or "" to keep the embedded default.
func (a *App) templateOverride(fs afero.Fs) string {
	path := filepath.Join(a.cfg.TargetDir, a.cfg.Scanner.TemplateFileName)

	info, err := fs.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}

	a.log.Info("Using custom page template", slog.String("path", path))

	return path
}
