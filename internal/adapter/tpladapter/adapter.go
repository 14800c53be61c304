package tpladapter

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	_ "embed"

	"github.com/auroralab/skywatch/internal/entity"
	"github.com/auroralab/skywatch/internal/util"
	"github.com/spf13/afero"
)

//go:embed templates/index.html
var defaultTemplate string

type tplAdapter struct {
	tpl *template.Template
}

// NewTplAdapter builds the page renderer. An empty templateFileName keeps
// the embedded default; otherwise the named file replaces it entirely.
func NewTplAdapter(templateFileName string) (*tplAdapter, error) {
	return NewTplAdapterWithFS(afero.NewOsFs(), templateFileName)
}

func NewTplAdapterWithFS(fs afero.Fs, templateFileName string) (*tplAdapter, error) {
	src := defaultTemplate
	if templateFileName != "" {
		data, err := afero.ReadFile(fs, templateFileName)
		if err != nil {
			return nil, fmt.Errorf("cannot read template: %w", err)
		}

		src = string(data)
	}

	tpl := template.New("").Funcs(template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 3:04 PM")
		},
		"formatSize": util.FormatFileSize,
		"formatKp": func(kp *float64) string {
			if kp == nil {
				return "N/A"
			}

			return fmt.Sprintf("%.2f", *kp)
		},
		"weekday": func(t time.Time) string {
			return t.Weekday().String()
		},
	})

	if _, err := tpl.Parse(src); err != nil {
		return nil, fmt.Errorf("cannot parse template: %w", err)
	}

	return &tplAdapter{tpl: tpl}, nil
}

// Parse renders the complete archive page to HTML.
func (a *tplAdapter) Parse(page *entity.ArchivePage) (string, error) {
	buf := bytes.Buffer{}
	if err := a.tpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("cannot execute template: %w", err)
	}

	return buf.String(), nil
}
