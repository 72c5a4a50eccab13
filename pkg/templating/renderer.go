package templating

import (
	"bytes"
	"path/filepath"
	"text/template"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Renderer renders manifest entries through the template engine.
type Renderer struct {
	fs types.FS
}

// NewRenderer creates a renderer that reads template sources through fs.
func NewRenderer(fs types.FS) *Renderer {
	return &Renderer{fs: fs}
}

// Render reads the entry's template source from the repository and
// substitutes expressions against the context. Unresolved variables are
// errors, not blanks: a template referencing a value the context does
// not hold fails that entry.
//
// Every failure is attributable to exactly one manifest entry.
func (r *Renderer) Render(entry types.ManifestEntry, repoRoot string, context types.RenderContext) ([]byte, error) {
	logger := logging.GetLogger("templating")

	sourcePath := filepath.Join(repoRoot, entry.Source)
	contents, err := r.fs.ReadFile(sourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRead,
			"failed to read template %s", sourcePath).
			WithDetail("source", entry.Source).
			WithDetail("destination", entry.Destination)
	}

	tmpl, err := template.New(entry.Source).Option("missingkey=error").Parse(string(contents))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender,
			"template compilation failure for %s", entry.Source).
			WithDetail("source", entry.Source).
			WithDetail("destination", entry.Destination)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}(context)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender,
			"template render failure for %s", entry.Source).
			WithDetail("source", entry.Source).
			WithDetail("destination", entry.Destination)
	}

	logger.Debug().
		Str("source", entry.Source).
		Str("destination", entry.Destination).
		Int("bytes", buf.Len()).
		Msg("rendered template")

	return buf.Bytes(), nil
}
