package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/patrickprogramme/ytaudience/internal/app"
	"github.com/patrickprogramme/ytaudience/internal/assets"
	"github.com/patrickprogramme/ytaudience/internal/bootstrap"
	"github.com/patrickprogramme/ytaudience/internal/config"
	"github.com/patrickprogramme/ytaudience/internal/logging"
	"github.com/patrickprogramme/ytaudience/internal/report"
	"github.com/patrickprogramme/ytaudience/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()
	tui := ui.NewTerminal()

	// .env facultatif : les variables déjà définies restent prioritaires
	_ = godotenv.Load()

	// déterminer binDir : config et templates vivent à côté de l'exécutable
	binDir := "."
	if exePath, err := os.Executable(); err == nil {
		binDir = filepath.Dir(exePath)
	}

	if flags.ConfigPath == "" || flags.ConfigPath == config.DefaultFileName {
		flags.ConfigPath = filepath.Join(binDir, config.DefaultFileName)
	}

	created, err := bootstrap.EnsureConfigPresent(flags.ConfigPath, assets.Embedded, assets.DefaultConfigAsset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erreur: %v\n", err)
		return 1
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load: %v\n", err)
		return 1
	}
	cfg.ApplyEnv(os.LookupEnv)
	app.ApplyFlags(cfg, flags)

	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if created {
		log.Info().Str("path", flags.ConfigPath).Msg("configuration par défaut créée")
	}
	if backup, ok := cfg.Upgraded(); ok {
		log.Info().Int("version", cfg.ConfigVersion).Str("backup", backup).Msg("configuration mise à jour")
	}

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if err != nil {
		log.Error().Err(err).Msg("configuration invalide")
		return 1
	}

	tplDir := filepath.Join(binDir, "templates")
	if err := bootstrap.EnsureTemplatesPresent(tplDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
		log.Warn().Err(err).Msg("templates non exportés")
	}
	renderer, err := report.DefaultRenderer(tplDir)
	if err != nil {
		log.Error().Err(err).Msg("impossible de construire le renderer")
		return 1
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, tui, renderer, log, tplDir)
	code := 0
	if err := a.Run(ctx, flag.Args()); err != nil {
		switch {
		case errors.Is(err, app.ErrUsage):
			tui.PrintError(ctx, err.Error())
			code = 2
		case errors.Is(err, context.Canceled):
			tui.PrintError(ctx, "opération annulée")
			code = 130
		default:
			log.Error().Err(err).Msg("échec")
			code = 1
		}
	}

	if flags.Pause {
		_ = tui.WaitForExit(ctx)
	}
	return code
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", config.DefaultFileName, "chemin du fichier de configuration")
	flag.StringVar(&f.Root, "root", "", "dossier racine des commentaires (remplace comments_root)")
	flag.StringVar(&f.OutputDir, "out", "", "dossier de sortie (remplace output_dir)")
	flag.StringVar(&f.LogLevel, "log-level", "", "debug | info | warn | error")
	flag.BoolVar(&f.Copy, "copy", false, "copie le rapport dans le presse-papier")
	flag.BoolVar(&f.Pause, "pause", false, "attend Entrée avant de quitter")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), app.Usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	return f
}
