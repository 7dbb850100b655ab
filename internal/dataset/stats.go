package dataset

import "github.com/patrickprogramme/ytaudience/pkg/model"

// ChannelStats compte ce que le parcours a vu pour une chaîne.
type ChannelStats struct {
	Folders      int // dossiers de chaîne rattachés au libellé
	Videos       int
	Files        int // fichiers .json décodés
	Skipped      int // fichiers illisibles ou JSON invalide
	Items        int // items de toutes les pages décodées
	Unattributed int // items sans authorChannelId
}

func (s *ChannelStats) add(o ChannelStats) {
	s.Folders += o.Folders
	s.Videos += o.Videos
	s.Files += o.Files
	s.Skipped += o.Skipped
	s.Items += o.Items
	s.Unattributed += o.Unattributed
}

// Stats agrège les compteurs par chaîne, en conservant l'ordre de découverte.
type Stats struct {
	byChannel map[model.Channel]*ChannelStats
	order     []model.Channel
}

func newStats() *Stats {
	return &Stats{byChannel: make(map[model.Channel]*ChannelStats)}
}

// Channel retourne les compteurs de c (créés à la volée).
func (s *Stats) Channel(c model.Channel) *ChannelStats {
	if cs, ok := s.byChannel[c]; ok {
		return cs
	}
	cs := &ChannelStats{}
	s.byChannel[c] = cs
	s.order = append(s.order, c)
	return cs
}

// Labels retourne les chaînes rencontrées, ordre de découverte.
func (s *Stats) Labels() []model.Channel {
	return append([]model.Channel(nil), s.order...)
}

func (s *Stats) Totals() ChannelStats {
	var t ChannelStats
	for _, c := range s.order {
		t.add(*s.byChannel[c])
	}
	return t
}
