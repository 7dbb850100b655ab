package assets

import "embed"

//go:embed ytaudience.example.yaml
//go:embed templates/*tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "ytaudience.example.yaml"

// DefaultTemplatePaths : liste ordonnée des templates "par défaut" embarqués.
// Ce sont des chemins relatifs DANS Embedded (ex: "templates/overlap.txt.tmpl").
var DefaultTemplatePaths = []string{
	"templates/overlap.txt.tmpl",
	"templates/jaccard.txt.tmpl",
	"templates/counts.txt.tmpl",
	"templates/replies.txt.tmpl",
}
