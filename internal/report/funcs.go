package report

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
)

// Band interprète un indice de Jaccard.
func Band(j float64) string {
	switch {
	case j < 0.02:
		return "Very Low (0-2%)"
	case j < 0.05:
		return "Low (2-5%)"
	case j < 0.10:
		return "Moderate (5-10%)"
	case j < 0.20:
		return "High (10-20%)"
	default:
		return "Very High (>20%)"
	}
}

// comma : 1234567 -> "1,234,567"
func comma(n int) string {
	return humanize.Comma(int64(n))
}

func fixed(prec int, f float64) string {
	return fmt.Sprintf("%.*f", prec, f)
}

// pad aligne s à gauche sur width runes.
func pad(width int, s string) string {
	return fmt.Sprintf("%-*s", width, s)
}

func rule(n int, ch string) string {
	return strings.Repeat(ch, n)
}

// funcMap construit la liste des fonctions exposées aux templates.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"comma": comma,
		"fixed": fixed,
		"pct":   func(f float64) float64 { return f * 100 },
		"pad":   pad,
		"rule":  rule,
		"band":  Band,
		"join":  strings.Join,
	}
}
