package overlap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/patrickprogramme/ytaudience/internal/comments"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// RunConfig décrit une analyse : la racine des dumps et la façon de
// rattacher les dossiers aux chaînes.
type RunConfig struct {
	Root           string
	Rules          []dataset.Rule
	UnknownFolders dataset.Policy
	// SeedChannels apparaissent dans l'index même sans utilisateur.
	// Vide : les libellés des règles.
	SeedChannels []model.Channel
	Log          zerolog.Logger
}

// Report est le résultat brut d'une analyse, prêt à être rendu ou exporté.
type Report struct {
	Users         Users
	Buckets       map[int][]*UserProfile // nombre de chaînes -> profils
	Index         ChannelIndex
	Jaccard       []JaccardResult
	TotalDistinct int
	Walk          *dataset.Stats
	Records       int // enregistrements attribués
	Elapsed       time.Duration
}

// Bucket retourne les profils présents sur exactement k chaînes.
func (r *Report) Bucket(k int) []*UserProfile {
	return r.Buckets[k]
}

// MaxChannelCount est le plus grand k observé.
func (r *Report) MaxChannelCount() int {
	m := 0
	for k := range r.Buckets {
		m = max(m, k)
	}
	return m
}

// Run parcourt cfg.Root, agrège les commentaires par auteur puis calcule
// buckets et indices de Jaccard. Seule une racine absente (ou une annulation)
// interrompt l'analyse : les fichiers invalides sont ignorés et comptés.
func Run(ctx context.Context, cfg RunConfig) (*Report, error) {
	start := time.Now()
	mapper := dataset.NewChannelMapper(cfg.Rules, cfg.UnknownFolders)
	w := dataset.New(cfg.Root, mapper, cfg.Log)

	users := make(Users)
	records := 0
	stats, err := w.Walk(ctx, dataset.Visitor{
		OnDocument: func(f dataset.File, doc *comments.Document) {
			records += users.AddAll(doc.Records(f.Channel))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parcours de %s: %w", cfg.Root, err)
	}

	seed := cfg.SeedChannels
	if len(seed) == 0 {
		seed = mapper.Labels()
	}
	idx := BuildIndex(users, seed...)

	rep := &Report{
		Users:         users,
		Buckets:       Partition(users),
		Index:         idx,
		Jaccard:       idx.Pairs(),
		TotalDistinct: idx.TotalDistinct(),
		Walk:          stats,
		Records:       records,
		Elapsed:       time.Since(start),
	}

	cfg.Log.Info().
		Int("users", len(users)).
		Int("records", records).
		Int("channels", len(idx)).
		Dur("elapsed", rep.Elapsed).
		Msg("analyse terminée")
	return rep, nil
}
