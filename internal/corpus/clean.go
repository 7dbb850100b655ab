package corpus

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// lettres, marques combinantes, chiffres, underscore, espaces
	notWordOrSpace = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]+`)
	// idem + ponctuation usuelle
	notWordSpaceOrPunct = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-.,!?'"]+`)

	// sélecteurs de variante des emojis (catégorie Mn, donc épargnés par \p{M})
	variationSel = regexp.MustCompile(`[\x{FE00}-\x{FE0F}]+`)

	lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// cases.Caser n'est pas sûr en concurrence : usage séquentiel uniquement.
var lower = cases.Lower(language.Und)

// StripHTML réduit le HTML de textDisplay (<br>, <a>, entités) à du texte brut.
// <br> devient un saut de ligne. En cas d'échec de parsing, s est retourné tel quel.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	s = lineBreak.ReplaceAllString(s, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanForClustering : espaces normalisés, minuscules, uniquement lettres,
// chiffres, underscore et espaces.
func CleanForClustering(s string) string {
	s = lower.String(collapse(s))
	s = notWordOrSpace.ReplaceAllString(s, "")
	s = variationSel.ReplaceAllString(s, "")
	return collapse(s)
}

// CleanAll conserve la casse et la ponctuation usuelle (-.,!?'"), retire
// emojis et symboles.
func CleanAll(s string) string {
	s = notWordSpaceOrPunct.ReplaceAllString(collapse(s), "")
	s = variationSel.ReplaceAllString(s, "")
	return collapse(s)
}

// WordCount compte les mots séparés par des espaces.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
