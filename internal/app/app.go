package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/patrickprogramme/ytaudience/internal/clipboard"
	"github.com/patrickprogramme/ytaudience/internal/config"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/internal/report"
	"github.com/patrickprogramme/ytaudience/internal/ui"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

const dirPerm = 0o755

// CLIFlags contient les informations venant des flags globaux de l'app
type CLIFlags struct {
	ConfigPath string
	Root       string
	OutputDir  string
	LogLevel   string
	Copy       bool
	Pause      bool
}

// App orchestre les différentes dépendances (config, UI, renderer, logger).
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	renderer *report.Renderer
	log      zerolog.Logger

	// tplDir : dossier des templates sur disque (commande init)
	tplDir string
	// copyText : presse-papier, remplaçable en test
	copyText func(string) error
}

// New construit l'application. Pour les tests, on injecte une UI factice et
// on remplace le presse-papier via SetClipboard.
func New(cfg *config.Config, uiClient ui.Interface, renderer *report.Renderer, log zerolog.Logger, tplDir string) *App {
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		renderer: renderer,
		log:      log,
		tplDir:   tplDir,
		copyText: copyToClipboard,
	}
}

func (a *App) SetClipboard(fn func(string) error) {
	a.copyText = fn
}

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	if !clipboard.ClipboardEquals(text) {
		return errors.New("le presse-papier ne contient pas le texte copié")
	}
	return nil
}

// ApplyFlags reporte les flags globaux sur la configuration.
func ApplyFlags(cfg *config.Config, f *CLIFlags) {
	if f.Root != "" {
		cfg.CommentsRoot = filepath.Clean(f.Root)
	}
	if f.OutputDir != "" {
		cfg.OutputDir = filepath.Clean(f.OutputDir)
	}
	if f.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(f.LogLevel)
	}
	if f.Copy {
		cfg.CopyToClipboard = true
	}
}

func (a *App) walker() *dataset.Walker {
	mapper := dataset.NewChannelMapper(a.cfg.Rules(), a.cfg.Policy())
	return dataset.New(a.cfg.CommentsRoot, mapper, a.log)
}

// outDir crée (au besoin) le dossier de sortie.
func (a *App) outDir() (string, error) {
	dir := a.cfg.OutputDir
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("création du dossier de sortie %s: %w", dir, err)
	}
	return dir, nil
}

// labels : les chaînes demandées (liste séparée par des virgules) ou, à
// défaut, celles de la configuration.
func (a *App) labels(csvList string) []model.Channel {
	if strings.TrimSpace(csvList) == "" {
		return a.cfg.Labels()
	}
	var out []model.Channel
	for _, part := range strings.Split(csvList, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, model.Channel(s))
		}
	}
	return out
}

// present affiche les rapports rendus puis les copie si demandé.
func (a *App) present(ctx context.Context, bodies ...[]byte) {
	var all strings.Builder
	for _, b := range bodies {
		a.ui.PrintReport(ctx, b)
		all.Write(b)
	}
	if !a.cfg.CopyToClipboard || all.Len() == 0 {
		return
	}
	if err := a.copyText(all.String()); err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("warning: copie dans le presse-papier impossible: %v", err))
		return
	}
	a.ui.PrintInfo(ctx, "Rapport copié dans le presse-papier.")
}

func (a *App) wrote(ctx context.Context, path string) {
	a.ui.PrintInfo(ctx, "✓ "+path)
}
