// Package corpus extrait le texte des commentaires d'une chaîne, un
// commentaire par ligne, pour les outils de clustering.
package corpus

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/ytaudience/internal/comments"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/internal/fsutil"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

type Mode string

const (
	// ModeClustering : minuscules, sans ponctuation, filtre sur le nombre de mots.
	ModeClustering Mode = "clustering"
	// ModeAll : ponctuation usuelle conservée, aucun filtre.
	ModeAll Mode = "all"
)

const DefaultMinWords = 5

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeClustering:
		return ModeClustering, nil
	case ModeAll:
		return ModeAll, nil
	default:
		return "", fmt.Errorf("mode de corpus inconnu: %q (clustering|all)", s)
	}
}

type Options struct {
	Mode      Mode
	MinWords  int // ModeClustering uniquement ; <= 0 -> DefaultMinWords
	StripHTML bool
}

// Corpus : lignes retenues et écartées d'une chaîne, dans l'ordre des dossiers.
type Corpus struct {
	Channel model.Channel
	Mode    Mode
	Kept    []string
	Removed []string // ModeClustering : moins de MinWords mots, lignes non vides
	Empty   int      // vides après nettoyage (emoji seuls...) : ni retenues ni écartées, jamais écrites
	Videos  int
	Files   int
}

// Clean applique le nettoyage de opts à un texte brut. keep=false : la ligne
// va dans Removed. Une chaîne vide n'est jamais écrite.
func Clean(raw string, opts Options) (line string, keep bool) {
	if opts.StripHTML {
		raw = StripHTML(raw)
	}
	if opts.Mode == ModeAll {
		line = CleanAll(raw)
		return line, true
	}
	line = CleanForClustering(raw)
	minWords := opts.MinWords
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return line, WordCount(line) >= minWords
}

// Build parcourt les dossiers de la chaîne label.
func Build(ctx context.Context, w *dataset.Walker, label model.Channel, opts Options) (*Corpus, error) {
	if opts.Mode == "" {
		opts.Mode = ModeClustering
	}
	c := &Corpus{Channel: label, Mode: opts.Mode}

	st, err := w.WalkChannel(ctx, label, dataset.Visitor{
		OnDocument: func(_ dataset.File, doc *comments.Document) {
			for th := range doc.Threads() {
				if th.Text == "" {
					continue
				}
				line, keep := Clean(th.Text, opts)
				switch {
				case line == "":
					c.Empty++
				case keep:
					c.Kept = append(c.Kept, line)
				default:
					c.Removed = append(c.Removed, line)
				}
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", label, err)
	}
	cs := st.Channel(label)
	c.Videos, c.Files = cs.Videos, cs.Files
	return c, nil
}

func FormattedFile(label model.Channel) string {
	return fsutil.SanitizeFilename(string(label)) + "_Comments_Formatted.txt"
}

func RemovedFile(label model.Channel) string {
	return fsutil.SanitizeFilename(string(label)) + "_removed_comments.txt"
}

// Save écrit le corpus dans dir. Le fichier des écartés n'est écrit qu'en
// ModeClustering. Retourne les chemins écrits.
func (c *Corpus) Save(dir string) ([]string, error) {
	kept := filepath.Join(dir, FormattedFile(c.Channel))
	if err := writeLines(kept, c.Kept); err != nil {
		return nil, err
	}
	paths := []string{kept}
	if c.Mode != ModeClustering {
		return paths, nil
	}
	removed := filepath.Join(dir, RemovedFile(c.Channel))
	if err := writeLines(removed, c.Removed); err != nil {
		return paths, err
	}
	return append(paths, removed), nil
}

func writeLines(path string, lines []string) error {
	err := fsutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		for _, l := range lines {
			if _, err := io.WriteString(w, l+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("écriture %s: %w", path, err)
	}
	return nil
}
