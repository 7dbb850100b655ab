package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/patrickprogramme/ytaudience/internal/corpus"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
)

// Validate vérifie la cohérence de la configuration.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	if _, perr := dataset.ParsePolicy(c.UnknownFolders); perr != nil {
		return warnings, perr
	}
	if _, merr := corpus.ParseMode(c.Corpus.Mode); merr != nil {
		return warnings, merr
	}

	seen := make(map[string]bool, len(c.Channels))
	for _, r := range c.Channels {
		key := strings.ToLower(r.Label)
		if seen[key] {
			return warnings, fmt.Errorf("libellé de chaîne en double : %q", r.Label)
		}
		seen[key] = true
	}
	if len(c.Channels) == 0 {
		warnings = append(warnings, "aucune règle de chaîne : chaque dossier sera sa propre chaîne")
	}

	// dossier des commentaires : absent = avertissement, les commandes échoueront plus tard
	if st, serr := os.Stat(c.CommentsRoot); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("dossier des commentaires introuvable : %s", c.CommentsRoot))
		} else {
			return warnings, fmt.Errorf("impossible d'accéder au dossier %s : %w", c.CommentsRoot, serr)
		}
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("comments_root n'est pas un répertoire : %s", c.CommentsRoot)
	}

	// dossier de sortie : il sera créé au besoin, mais pas s'il s'agit d'un fichier
	if st, serr := os.Stat(c.OutputDir); serr == nil && !st.IsDir() {
		return warnings, fmt.Errorf("output_dir n'est pas un répertoire : %s", c.OutputDir)
	}

	return warnings, nil
}
