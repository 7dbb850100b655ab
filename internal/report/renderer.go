// Package report met en forme les résultats (overlap, Jaccard, comptages,
// réponses) via text/template. Les templates embarqués servent de base ; ceux
// du dossier templates/ à côté du binaire les remplacent, nom par nom.
package report

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/patrickprogramme/ytaudience/internal/assets"
	"github.com/patrickprogramme/ytaudience/internal/fsutil"
)

// Noms des templates (basename des fichiers .tmpl).
const (
	OverlapTemplate = "overlap.txt.tmpl"
	JaccardTemplate = "jaccard.txt.tmpl"
	CountsTemplate  = "counts.txt.tmpl"
	RepliesTemplate = "replies.txt.tmpl"
)

const templatePattern = "*.txt.tmpl"

// Source : un fs.FS et un motif de fichiers à y parser.
type Source struct {
	FS      fs.FS
	Pattern string
}

// Renderer gère le parsing paresseux (lazy) des templates et fournit le rendu.
// Les sources sont parsées dans l'ordre : un template redéfini par une source
// ultérieure remplace le précédent.
type Renderer struct {
	templates *template.Template
	sources   []Source
	once      sync.Once
	err       error
}

// NewRendererFromFS construit un Renderer sans parser immédiatement.
func NewRendererFromFS(sources ...Source) (*Renderer, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("aucune source de templates")
	}
	for _, s := range sources {
		if s.FS == nil {
			return nil, fmt.Errorf("fsys est nil (motif %q)", s.Pattern)
		}
	}
	return &Renderer{sources: append([]Source(nil), sources...)}, nil
}

// DefaultRenderer : templates embarqués, surchargés par ceux de tplDir s'il
// en contient.
func DefaultRenderer(tplDir string) (*Renderer, error) {
	sources := []Source{{FS: assets.Embedded, Pattern: "templates/" + templatePattern}}

	ok, err := fsutil.DirHasMatchingFiles(tplDir, []string{templatePattern})
	if err != nil {
		return nil, fmt.Errorf("templates %s: %w", tplDir, err)
	}
	if ok {
		sources = append(sources, Source{FS: os.DirFS(tplDir), Pattern: templatePattern})
	}
	return NewRendererFromFS(sources...)
}

// parseTemplates effectue le parsing une seule fois (sync.Once).
func (r *Renderer) parseTemplates() error {
	r.once.Do(func() {
		t := template.New("root").Funcs(funcMap())
		for _, s := range r.sources {
			var err error
			if t, err = t.ParseFS(s.FS, s.Pattern); err != nil {
				r.err = fmt.Errorf("parse pattern %q: %w", s.Pattern, err)
				return
			}
		}
		r.templates = t
	})
	return r.err
}

// ParseNow force le parsing immédiat et retourne l'erreur éventuelle.
func (r *Renderer) ParseNow() error {
	if r == nil {
		return fmt.Errorf("nil renderer")
	}
	return r.parseTemplates()
}

// Render exécute le template nommé tmplName avec data.
func (r *Renderer) Render(tmplName string, data any) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is nil")
	}
	if err := r.parseTemplates(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}

// TemplateNames retourne les noms des templates parsés ; avant parsing, les
// basenames des motifs.
func (r *Renderer) TemplateNames() []string {
	if r == nil {
		return nil
	}
	if r.templates == nil {
		out := make([]string, 0, len(r.sources))
		for _, s := range r.sources {
			out = append(out, filepath.Base(s.Pattern))
		}
		return out
	}
	names := make([]string, 0, len(r.templates.Templates()))
	for _, t := range r.templates.Templates() {
		if n := t.Name(); n != "" && n != "root" {
			names = append(names, n)
		}
	}
	return names
}
