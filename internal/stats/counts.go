// Package stats produit les statistiques descriptives du corpus : volume de
// commentaires par chaîne et par vidéo, distribution des nombres de réponses.
package stats

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/patrickprogramme/ytaudience/internal/comments"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// VideoCount : nombre d'items (attribués ou non) d'une vidéo, toutes pages confondues.
type VideoCount struct {
	VideoID  string
	Comments int
}

// ChannelCount résume une chaîne. Max et Min : la première vidéo rencontrée
// l'emporte en cas d'égalité.
type ChannelCount struct {
	Channel  model.Channel
	Videos   int
	Comments int
	Max      VideoCount
	Min      VideoCount
	Missing  bool // aucun dossier pour cette chaîne
}

func (c ChannelCount) Average() float64 {
	if c.Videos == 0 {
		return 0
	}
	return float64(c.Comments) / float64(c.Videos)
}

type CountReport struct {
	Channels []ChannelCount
}

// Totals additionne toutes les chaînes.
func (r *CountReport) Totals() ChannelCount {
	var t ChannelCount
	t.Channel = "TOTAL"
	for _, c := range r.Channels {
		t.Videos += c.Videos
		t.Comments += c.Comments
	}
	return t
}

type videoTally struct {
	order []model.Channel
	byCh  map[model.Channel][]VideoCount
}

func (t *videoTally) visitor() dataset.Visitor {
	return dataset.Visitor{
		OnVideo: func(f dataset.File) {
			if _, ok := t.byCh[f.Channel]; !ok {
				t.order = append(t.order, f.Channel)
			}
			t.byCh[f.Channel] = append(t.byCh[f.Channel], VideoCount{VideoID: f.VideoID})
		},
		OnDocument: func(f dataset.File, doc *comments.Document) {
			vs := t.byCh[f.Channel]
			if len(vs) == 0 {
				return
			}
			vs[len(vs)-1].Comments += doc.Len()
		},
	}
}

func summarize(ch model.Channel, videos []VideoCount) ChannelCount {
	c := ChannelCount{Channel: ch, Videos: len(videos)}
	for i, v := range videos {
		c.Comments += v.Comments
		if i == 0 || v.Comments > c.Max.Comments {
			c.Max = v
		}
		if i == 0 || v.Comments < c.Min.Comments {
			c.Min = v
		}
	}
	return c
}

// CountComments compte les items par vidéo pour chaque libellé de labels
// (dans cet ordre). labels vide : toutes les chaînes trouvées sous la racine.
// Une chaîne sans dossier est marquée Missing, les autres continuent.
func CountComments(ctx context.Context, w *dataset.Walker, labels []model.Channel, log zerolog.Logger) (*CountReport, error) {
	tally := &videoTally{byCh: make(map[model.Channel][]VideoCount)}
	rep := &CountReport{}

	if len(labels) == 0 {
		if _, err := w.Walk(ctx, tally.visitor()); err != nil {
			return nil, err
		}
		for _, ch := range tally.order {
			rep.Channels = append(rep.Channels, summarize(ch, tally.byCh[ch]))
		}
		return rep, nil
	}

	for _, label := range labels {
		_, err := w.WalkChannel(ctx, label, tally.visitor())
		if errors.Is(err, dataset.ErrNoChannelFolder) {
			log.Warn().Str("channel", string(label)).Msg("aucun dossier pour cette chaîne")
			rep.Channels = append(rep.Channels, ChannelCount{Channel: label, Missing: true})
			continue
		}
		if err != nil {
			return nil, err
		}
		rep.Channels = append(rep.Channels, summarize(label, tally.byCh[label]))
	}
	return rep, nil
}
