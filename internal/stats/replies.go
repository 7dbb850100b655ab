package stats

import (
	"context"
	"errors"
	"fmt"
	"slices"

	mstats "github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"github.com/patrickprogramme/ytaudience/internal/comments"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

var ErrNoData = errors.New("aucun fil de commentaires à analyser")

// CollectReplyCounts relève totalReplyCount de chaque item (avec snippet) des
// chaînes demandées. labels vide : toutes les chaînes. Une chaîne sans dossier
// est signalée puis ignorée ; ErrNoData si rien n'a été relevé.
func CollectReplyCounts(ctx context.Context, w *dataset.Walker, labels []model.Channel, log zerolog.Logger) ([]int, error) {
	var out []int
	v := dataset.Visitor{
		OnDocument: func(_ dataset.File, doc *comments.Document) {
			for th := range doc.Threads() {
				out = append(out, th.ReplyCount)
			}
		},
	}

	if len(labels) == 0 {
		if _, err := w.Walk(ctx, v); err != nil {
			return nil, err
		}
		return out, nil
	}
	for _, label := range labels {
		_, err := w.WalkChannel(ctx, label, v)
		if errors.Is(err, dataset.ErrNoChannelFolder) {
			log.Warn().Str("channel", string(label)).Msg("aucun dossier pour cette chaîne")
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// Frequency : nombre de fils ayant exactement ReplyCount réponses.
type Frequency struct {
	ReplyCount int
	Frequency  int
}

type ReplyStats struct {
	Count        int
	Mean         float64
	Median       float64
	StdDev       float64 // écart-type d'échantillon (n-1), 0 si n < 2
	Min          int
	Max          int
	Distribution []Frequency // ReplyCount croissant
}

// ComputeReplyStats calcule les statistiques descriptives de values.
func ComputeReplyStats(values []int) (ReplyStats, error) {
	if len(values) == 0 {
		return ReplyStats{}, ErrNoData
	}
	data := mstats.LoadRawData(values)

	var rs ReplyStats
	var err error
	rs.Count = len(values)
	if rs.Mean, err = mstats.Mean(data); err != nil {
		return ReplyStats{}, fmt.Errorf("moyenne: %w", err)
	}
	if rs.Median, err = mstats.Median(data); err != nil {
		return ReplyStats{}, fmt.Errorf("médiane: %w", err)
	}
	if rs.Count > 1 {
		if rs.StdDev, err = mstats.StandardDeviationSample(data); err != nil {
			return ReplyStats{}, fmt.Errorf("écart-type: %w", err)
		}
	}
	rs.Min = slices.Min(values)
	rs.Max = slices.Max(values)

	freq := make(map[int]int)
	for _, v := range values {
		freq[v]++
	}
	for v, n := range freq {
		rs.Distribution = append(rs.Distribution, Frequency{ReplyCount: v, Frequency: n})
	}
	slices.SortFunc(rs.Distribution, func(a, b Frequency) int { return a.ReplyCount - b.ReplyCount })
	return rs, nil
}
