package report

import (
	"fmt"
	"time"

	"github.com/patrickprogramme/ytaudience/internal/overlap"
	"github.com/patrickprogramme/ytaudience/internal/stats"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// TopUser : une ligne du classement par likes.
type TopUser struct {
	Rank     int
	Name     string
	Comments int
	Likes    int
}

// BucketView : un bucket (utilisateurs présents sur exactement K chaînes).
type BucketView struct {
	K            int
	Label        string
	Stats        overlap.BucketStats
	Combinations []overlap.Combination // K >= 2
	Top          []TopUser             // bucket le plus haut uniquement
}

// WalkLine : compteurs de parcours d'une chaîne.
type WalkLine struct {
	Channel      model.Channel
	Videos       int
	Files        int
	Skipped      int
	Unattributed int
}

type OverlapView struct {
	Root       string
	TotalUsers int
	Records    int
	Buckets    []BucketView
	Single     []overlap.ChannelCount
	Walk       []WalkLine
	Elapsed    time.Duration
}

func bucketLabel(k int) string {
	switch k {
	case 1:
		return "Users on 1 channel only:"
	default:
		return fmt.Sprintf("Users on %d channels:", k)
	}
}

// NewOverlapView prépare le rendu de rep. Les buckets 1..maxK sont toujours
// présents (éventuellement vides) ; topN profils pour le bucket maxK.
func NewOverlapView(rep *overlap.Report, root string, maxK, topN int) OverlapView {
	v := OverlapView{
		Root:       root,
		TotalUsers: len(rep.Users),
		Records:    rep.Records,
		Elapsed:    rep.Elapsed,
	}
	maxK = max(maxK, rep.MaxChannelCount())

	for k := 1; k <= maxK; k++ {
		ps := rep.Bucket(k)
		bv := BucketView{K: k, Label: bucketLabel(k), Stats: overlap.Stats(ps)}
		if k == 1 {
			v.Single = overlap.SingleChannelBreakdown(ps)
		} else {
			bv.Combinations = overlap.Combinations(ps)
		}
		if k == maxK {
			for i, p := range overlap.TopByLikes(ps, topN) {
				bv.Top = append(bv.Top, TopUser{
					Rank:     i + 1,
					Name:     p.DisplayName(),
					Comments: p.TotalComments,
					Likes:    p.TotalLikes,
				})
			}
		}
		v.Buckets = append(v.Buckets, bv)
	}

	if rep.Walk != nil {
		for _, c := range rep.Walk.Labels() {
			cs := rep.Walk.Channel(c)
			v.Walk = append(v.Walk, WalkLine{
				Channel:      c,
				Videos:       cs.Videos,
				Files:        cs.Files,
				Skipped:      cs.Skipped,
				Unattributed: cs.Unattributed,
			})
		}
	}
	return v
}

// ChannelShare : utilisateurs distincts d'une chaîne et part du total.
type ChannelShare struct {
	Channel model.Channel
	Users   int
	Share   float64 // en %
}

type PairView struct {
	overlap.JaccardResult
	Name string
}

type JaccardView struct {
	Channels      []ChannelShare
	TotalDistinct int
	Pairs         []PairView
}

func NewJaccardView(rep *overlap.Report) JaccardView {
	v := JaccardView{TotalDistinct: rep.TotalDistinct}
	for _, c := range rep.Index.Channels() {
		n := rep.Index.Size(c)
		share := 0.0
		if rep.TotalDistinct > 0 {
			share = float64(n) / float64(rep.TotalDistinct) * 100
		}
		v.Channels = append(v.Channels, ChannelShare{Channel: c, Users: n, Share: share})
	}
	for _, r := range rep.Jaccard {
		v.Pairs = append(v.Pairs, PairView{JaccardResult: r, Name: fmt.Sprintf("%s vs %s", r.Channel1, r.Channel2)})
	}
	return v
}

type RepliesView struct {
	Channels []model.Channel // vide : toutes
	Stats    stats.ReplyStats
}
