package mdadapter

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"github.com/auroralab/skywatch/internal/common"
	"github.com/auroralab/skywatch/internal/entity"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

type aboutMeta struct {
	Title   string `yaml:"title"`
	Enabled *bool  `yaml:"enabled"`
}

type mdAdapter struct {
	fs afero.Fs
	md goldmark.Markdown

	log *slog.Logger
}

func NewMDAdapter(log *slog.Logger) *mdAdapter {
	return NewMDAdapterWithFS(afero.NewOsFs(), log)
}

func NewMDAdapterWithFS(fs afero.Fs, log *slog.Logger) *mdAdapter {
	md := goldmark.New(
		goldmark.WithExtensions(
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &mdAdapter{
		fs:  fs,
		md:  md,
		log: log.With(slog.String("item", "MDAdapter")),
	}
}

// Render converts an about markdown file to HTML. A missing file yields
// (nil, nil); frontmatter with enabled: false yields ErrAboutDisabled.
func (a *mdAdapter) Render(path string) (*entity.About, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("cannot read about file: %w", err)
	}

	var buf bytes.Buffer
	ctx := parser.NewContext()

	if err := a.md.Convert(data, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("cannot convert markdown: %w", err)
	}

	about := &entity.About{HTML: template.HTML(buf.String())}

	if fm := frontmatter.Get(ctx); fm != nil {
		var meta aboutMeta
		if err := fm.Decode(&meta); err != nil {
			return nil, fmt.Errorf("cannot decode frontmatter: %w", err)
		}

		if meta.Enabled != nil && !*meta.Enabled {
			return nil, common.ErrAboutDisabled
		}

		about.Title = meta.Title
	}

	a.log.Debug("Rendered about notes", slog.String("path", path), slog.String("title", about.Title))

	return about, nil
}
