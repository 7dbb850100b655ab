package overlap

import (
	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// ChannelIndex associe chaque chaîne à l'ensemble des author_id qui y ont commenté.
// Vue dérivée de Users, jamais modifiée après construction.
type ChannelIndex map[model.Channel]map[string]struct{}

// BuildIndex construit l'index depuis users. Les chaînes de seed apparaissent
// même sans aucun utilisateur.
func BuildIndex(users Users, seed ...model.Channel) ChannelIndex {
	idx := make(ChannelIndex, len(seed))
	for _, c := range seed {
		if _, ok := idx[c]; !ok {
			idx[c] = make(map[string]struct{})
		}
	}
	for id, p := range users {
		for c := range p.channels {
			set, ok := idx[c]
			if !ok {
				set = make(map[string]struct{})
				idx[c] = set
			}
			set[id] = struct{}{}
		}
	}
	return idx
}

// Channels retourne les chaînes de l'index, triées.
func (idx ChannelIndex) Channels() []model.Channel {
	out := make([]model.Channel, 0, len(idx))
	for c := range idx {
		out = append(out, c)
	}
	model.SortChannels(out)
	return out
}

func (idx ChannelIndex) Size(c model.Channel) int {
	return len(idx[c])
}

// TotalDistinct : taille de l'union sur toutes les chaînes.
func (idx ChannelIndex) TotalDistinct() int {
	all := make(map[string]struct{})
	for _, set := range idx {
		for id := range set {
			all[id] = struct{}{}
		}
	}
	return len(all)
}

// JaccardResult décrit le recouvrement d'une paire de chaînes.
// Intersection + Ch1Only + Ch2Only == Union.
type JaccardResult struct {
	Channel1     model.Channel
	Channel2     model.Channel
	UsersCh1     int
	UsersCh2     int
	Intersection int
	Union        int
	Ch1Only      int
	Ch2Only      int
	Index        float64 // 0 si l'union est vide
}

// Compare calcule le résultat pour (a, b).
func (idx ChannelIndex) Compare(a, b model.Channel) JaccardResult {
	setA, setB := idx[a], idx[b]
	inter := 0
	for id := range setA {
		if _, ok := setB[id]; ok {
			inter++
		}
	}
	r := JaccardResult{
		Channel1:     a,
		Channel2:     b,
		UsersCh1:     len(setA),
		UsersCh2:     len(setB),
		Intersection: inter,
		Union:        len(setA) + len(setB) - inter,
		Ch1Only:      len(setA) - inter,
		Ch2Only:      len(setB) - inter,
	}
	if r.Union > 0 {
		r.Index = float64(r.Intersection) / float64(r.Union)
	}
	return r
}

// Pairs calcule les C(n,2) paires, chaînes triées, (i<j).
func (idx ChannelIndex) Pairs() []JaccardResult {
	chs := idx.Channels()
	out := make([]JaccardResult, 0, len(chs)*(len(chs)-1)/2)
	for i := range chs {
		for j := i + 1; j < len(chs); j++ {
			out = append(out, idx.Compare(chs[i], chs[j]))
		}
	}
	return out
}
