// Package logging construit le logger zerolog partagé par l'application.
// Les rapports destinés à l'utilisateur passent par ui ; ici uniquement les
// diagnostics (fichiers ignorés, progression, durées).
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New retourne un logger au niveau demandé ("debug", "info", "warn"...).
// Niveau inconnu -> info. Format "json" : une ligne JSON par évènement,
// sinon sortie console lisible.
func New(level, format string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	out := w
	if strings.ToLower(strings.TrimSpace(format)) != FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Nop retourne un logger muet (tests, sorties redirigées).
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
