package app

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/ytaudience/internal/assets"
	"github.com/patrickprogramme/ytaudience/internal/bootstrap"
	"github.com/patrickprogramme/ytaudience/internal/corpus"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/internal/export"
	"github.com/patrickprogramme/ytaudience/internal/overlap"
	"github.com/patrickprogramme/ytaudience/internal/report"
	"github.com/patrickprogramme/ytaudience/internal/stats"
	"github.com/patrickprogramme/ytaudience/internal/videoids"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// ErrUsage : commande inconnue ou arguments invalides.
var ErrUsage = errors.New("usage invalide")

const Usage = `ytaudience [-config path] [-root dir] [-out dir] [-log-level lvl] [-copy] [-pause] <commande> [flags]

commandes :
  analyze [-unknown-folders p]     buckets d'utilisateurs + indices de Jaccard
  overlap [-unknown-folders p]     buckets d'utilisateurs uniquement
  jaccard [-unknown-folders p]     indices de Jaccard uniquement (défaut : skip)
  count                            commentaires par chaîne et par vidéo
  corpus [-mode m] [-channel c]    corpus texte (clustering | all)
  replies [-channel c]             statistiques des nombres de réponses
  videoids -in f [-out f] [-encoding e]
  filter -in f [-out f]            User_ID, Comment_Text d'un CSV détaillé
  init [-force]                    exporte les templates par défaut
`

// Run exécute la commande args[0] avec ses flags.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: commande manquante\n\n%s", ErrUsage, Usage)
	}
	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)

	switch cmd {
	case "analyze", "overlap", "jaccard":
		// jaccard compare uniquement les chaînes configurées
		def := a.cfg.UnknownFolders
		if cmd == "jaccard" {
			def = string(dataset.PolicySkip)
		}
		unknown := fs.String("unknown-folders", def, "dossiers non reconnus : keep | skip")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		policy, err := dataset.ParsePolicy(*unknown)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return a.Analyze(ctx, policy, cmd != "jaccard", cmd != "overlap")

	case "count":
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return a.Count(ctx)

	case "corpus":
		mode := fs.String("mode", a.cfg.Corpus.Mode, "clustering | all")
		channels := fs.String("channel", "", "chaînes (séparées par des virgules)")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		m, err := corpus.ParseMode(*mode)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return a.Corpus(ctx, m, *channels)

	case "replies":
		channels := fs.String("channel", "", "chaînes (séparées par des virgules), vide : toutes")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return a.Replies(ctx, *channels)

	case "videoids":
		in := fs.String("in", "", "CSV source")
		out := fs.String("out", "", "fichier des ids (défaut : <output_dir>/VideoIDs.txt)")
		enc := fs.String("encoding", "utf-16", "utf-16 | utf-8")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if *in == "" {
			return fmt.Errorf("%w: -in est obligatoire", ErrUsage)
		}
		e, err := videoids.ParseEncoding(*enc)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return a.VideoIDs(ctx, *in, *out, e)

	case "filter":
		in := fs.String("in", "", "CSV détaillé source")
		out := fs.String("out", "", "CSV filtré (défaut : <output_dir>/"+export.FilteredFile+")")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if *in == "" {
			return fmt.Errorf("%w: -in est obligatoire", ErrUsage)
		}
		return a.Filter(ctx, *in, *out)

	case "init":
		force := fs.Bool("force", false, "écrase les templates modifiés (avec sauvegarde)")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return a.Init(ctx, *force)

	default:
		return fmt.Errorf("%w: commande inconnue %q\n\n%s", ErrUsage, cmd, Usage)
	}
}

// Analyze construit les profils utilisateurs puis exporte les buckets
// (withBuckets) et/ou les indices de Jaccard (withJaccard). policy décide du
// sort des dossiers qui ne correspondent à aucune règle.
func (a *App) Analyze(ctx context.Context, policy dataset.Policy, withBuckets, withJaccard bool) error {
	rep, err := overlap.Run(ctx, overlap.RunConfig{
		Root:           a.cfg.CommentsRoot,
		Rules:          a.cfg.Rules(),
		UnknownFolders: policy,
		Log:            a.log,
	})
	if err != nil {
		return err
	}
	dir, err := a.outDir()
	if err != nil {
		return err
	}

	var bodies [][]byte
	if withBuckets {
		if err := a.exportBuckets(ctx, dir, rep); err != nil {
			return err
		}
		view := report.NewOverlapView(rep, a.cfg.CommentsRoot, a.cfg.MaxChannelCount, a.cfg.TopUsers)
		body, err := a.renderer.Render(report.OverlapTemplate, view)
		if err != nil {
			return err
		}
		bodies = append(bodies, body)
	}
	if withJaccard {
		path := filepath.Join(dir, export.JaccardFile)
		if err := export.SaveCSV(path, func(cw *csv.Writer) error {
			return export.WriteJaccard(cw, rep.Jaccard)
		}); err != nil {
			return err
		}
		a.wrote(ctx, path)
		body, err := a.renderer.Render(report.JaccardTemplate, report.NewJaccardView(rep))
		if err != nil {
			return err
		}
		bodies = append(bodies, body)
	}

	if a.cfg.Export.SQLitePath != "" {
		if err := a.exportSQLite(ctx, rep); err != nil {
			return err
		}
	}

	a.present(ctx, bodies...)
	return nil
}

// exportBuckets écrit un CSV résumé (et détaillé) par bucket non vide.
func (a *App) exportBuckets(ctx context.Context, dir string, rep *overlap.Report) error {
	maxK := max(a.cfg.MaxChannelCount, rep.MaxChannelCount())
	for k := 1; k <= maxK; k++ {
		profiles := rep.Bucket(k)
		if len(profiles) == 0 {
			a.ui.PrintInfo(ctx, fmt.Sprintf("Aucun utilisateur sur exactement %d chaîne(s) : %s non écrit.", k, export.BucketFile(k, false)))
			continue
		}
		path := filepath.Join(dir, export.BucketFile(k, false))
		if err := export.SaveCSV(path, func(cw *csv.Writer) error {
			return export.WriteUsersSummary(cw, profiles)
		}); err != nil {
			return err
		}
		a.wrote(ctx, path)

		if !a.cfg.Export.Detailed {
			continue
		}
		path = filepath.Join(dir, export.BucketFile(k, true))
		if err := export.SaveCSV(path, func(cw *csv.Writer) error {
			return export.WriteUsersDetailed(cw, profiles)
		}); err != nil {
			return err
		}
		a.wrote(ctx, path)
	}
	return nil
}

func (a *App) exportSQLite(ctx context.Context, rep *overlap.Report) (err error) {
	sink, err := export.OpenSQLite(ctx, a.cfg.Export.SQLitePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()
	if err := sink.WriteReport(ctx, rep); err != nil {
		return err
	}
	a.wrote(ctx, sink.Path())
	return nil
}

// Count : volume de commentaires par chaîne configurée.
func (a *App) Count(ctx context.Context) error {
	rep, err := stats.CountComments(ctx, a.walker(), a.cfg.Labels(), a.log)
	if err != nil {
		return err
	}
	dir, err := a.outDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, export.CommentCountsFile)
	if err := export.SaveCSV(path, func(cw *csv.Writer) error {
		return export.WriteCommentCounts(cw, rep)
	}); err != nil {
		return err
	}
	a.wrote(ctx, path)

	body, err := a.renderer.Render(report.CountsTemplate, rep)
	if err != nil {
		return err
	}
	a.present(ctx, body)
	return nil
}

// Corpus écrit un corpus par chaîne ; une chaîne sans dossier est signalée
// sans interrompre les autres.
func (a *App) Corpus(ctx context.Context, mode corpus.Mode, channels string) error {
	dir, err := a.outDir()
	if err != nil {
		return err
	}
	opts := corpus.Options{Mode: mode, MinWords: a.cfg.Corpus.MinWords, StripHTML: a.cfg.Corpus.StripHTML}
	w := a.walker()

	for _, label := range a.labels(channels) {
		c, err := corpus.Build(ctx, w, label, opts)
		if errors.Is(err, dataset.ErrNoChannelFolder) {
			a.ui.PrintError(ctx, fmt.Sprintf("%s : dossier introuvable", label))
			continue
		}
		if err != nil {
			return err
		}
		paths, err := c.Save(dir)
		if err != nil {
			return err
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("%s : %d conservés, %d écartés, %d vides (%d vidéos)",
			label, len(c.Kept), len(c.Removed), c.Empty, c.Videos))
		for _, p := range paths {
			a.wrote(ctx, p)
		}
	}
	return nil
}

// Replies : statistiques des totalReplyCount ; channels vide = toutes les chaînes.
func (a *App) Replies(ctx context.Context, channels string) error {
	var labels []model.Channel
	if strings.TrimSpace(channels) != "" {
		labels = a.labels(channels)
	}
	values, err := stats.CollectReplyCounts(ctx, a.walker(), labels, a.log)
	if err != nil {
		return err
	}
	rs, err := stats.ComputeReplyStats(values)
	if err != nil {
		return err
	}

	dir, err := a.outDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, export.ReplyStatsFile)
	if err := export.SaveCSV(path, func(cw *csv.Writer) error {
		return export.WriteReplyDistribution(cw, rs)
	}); err != nil {
		return err
	}
	a.wrote(ctx, path)

	body, err := a.renderer.Render(report.RepliesTemplate, report.RepliesView{Channels: labels, Stats: rs})
	if err != nil {
		return err
	}
	a.present(ctx, body)
	return nil
}

func (a *App) VideoIDs(ctx context.Context, in, out string, enc videoids.Encoding) error {
	if out == "" {
		dir, err := a.outDir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, "VideoIDs.txt")
	}
	res, err := videoids.ExtractFile(in, out, enc)
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		a.log.Debug().Int("row", s.Row).Str("reason", s.Reason).Msg("ligne ignorée")
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("%d ids extraits, %d lignes ignorées", len(res.IDs), len(res.Skipped)))
	a.wrote(ctx, out)
	return nil
}

func (a *App) Filter(ctx context.Context, in, out string) error {
	if out == "" {
		dir, err := a.outDir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, export.FilteredFile)
	}
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("ouverture %s: %w", in, err)
	}
	defer f.Close()

	var n int
	if err := export.SaveCSV(out, func(cw *csv.Writer) error {
		var ferr error
		n, ferr = export.FilterDetailed(f, cw)
		return ferr
	}); err != nil {
		return err
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("%d commentaires filtrés", n))
	a.wrote(ctx, out)
	return nil
}

// Init exporte les templates embarqués dans tplDir. Avec force, les fichiers
// modifiés sont remplacés (après confirmation, avec sauvegarde).
func (a *App) Init(ctx context.Context, force bool) error {
	if force {
		ok, err := a.ui.Confirm(ctx, fmt.Sprintf("Remplacer les templates modifiés dans %s ?", a.tplDir), false)
		if err != nil {
			return err
		}
		force = ok
	}
	status, err := bootstrap.ExportDefaults(assets.Embedded, "templates", a.tplDir, force)
	if err != nil {
		return fmt.Errorf("export des templates: %w", err)
	}
	for _, p := range bootstrap.SortedPaths(status) {
		a.ui.PrintInfo(ctx, fmt.Sprintf("%-28s %s", filepath.Base(p), status[p]))
	}
	if err := a.renderer.ParseNow(); err != nil {
		return fmt.Errorf("templates invalides: %w", err)
	}
	return nil
}
