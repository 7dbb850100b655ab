package overlap

import (
	"cmp"
	"slices"
	"strings"

	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// byEngagement : likes décroissants, puis author_id (ordre stable des rapports).
func byEngagement(a, b *UserProfile) int {
	if c := cmp.Compare(b.TotalLikes, a.TotalLikes); c != 0 {
		return c
	}
	return strings.Compare(a.AuthorID, b.AuthorID)
}

// ByChannelCount retourne les profils présents sur exactement k chaînes,
// triés par likes décroissants.
func ByChannelCount(users Users, k int) []*UserProfile {
	var out []*UserProfile
	for _, p := range users {
		if p.ChannelCount() == k {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, byEngagement)
	return out
}

// Partition répartit tous les profils par nombre de chaînes.
// Chaque profil apparaît dans exactement un bucket.
func Partition(users Users) map[int][]*UserProfile {
	out := make(map[int][]*UserProfile)
	for _, p := range users {
		k := p.ChannelCount()
		out[k] = append(out[k], p)
	}
	for _, ps := range out {
		slices.SortFunc(ps, byEngagement)
	}
	return out
}

// ChannelCount : nombre d'utilisateurs mono-chaîne pour une chaîne.
type ChannelCount struct {
	Channel model.Channel
	Users   int
}

// SingleChannelBreakdown compte les profils mono-chaîne par chaîne, ordre des libellés.
func SingleChannelBreakdown(profiles []*UserProfile) []ChannelCount {
	counts := make(map[model.Channel]int)
	for _, p := range profiles {
		if p.ChannelCount() != 1 {
			continue
		}
		counts[p.Channels()[0]]++
	}
	out := make([]ChannelCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, ChannelCount{Channel: c, Users: n})
	}
	slices.SortFunc(out, func(a, b ChannelCount) int {
		return strings.Compare(string(a.Channel), string(b.Channel))
	})
	return out
}

// Combination : un ensemble de chaînes (trié) et le nombre d'utilisateurs
// qui ont commenté exactement sur cet ensemble.
type Combination struct {
	Channels []model.Channel
	Users    int
}

// Label joint les chaînes avec sep (ex: "India + Pakistan").
func (c Combination) Label(sep string) string {
	parts := make([]string, len(c.Channels))
	for i, ch := range c.Channels {
		parts[i] = string(ch)
	}
	return strings.Join(parts, sep)
}

const comboKeySep = "\x00"

// Combinations compte les combinaisons de chaînes des profils, par fréquence
// décroissante puis par libellé.
func Combinations(profiles []*UserProfile) []Combination {
	byKey := make(map[string]*Combination)
	for _, p := range profiles {
		chs := p.Channels()
		parts := make([]string, len(chs))
		for i, c := range chs {
			parts[i] = string(c)
		}
		key := strings.Join(parts, comboKeySep)
		if c, ok := byKey[key]; ok {
			c.Users++
			continue
		}
		byKey[key] = &Combination{Channels: chs, Users: 1}
	}

	out := make([]Combination, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, *c)
	}
	slices.SortFunc(out, func(a, b Combination) int {
		if c := cmp.Compare(b.Users, a.Users); c != 0 {
			return c
		}
		return slices.Compare(a.Channels, b.Channels)
	})
	return out
}

// BucketStats résume un bucket.
type BucketStats struct {
	Users         int
	TotalComments int
	TotalLikes    int
	AvgComments   float64
	AvgLikes      float64
}

func Stats(profiles []*UserProfile) BucketStats {
	var s BucketStats
	s.Users = len(profiles)
	for _, p := range profiles {
		s.TotalComments += p.TotalComments
		s.TotalLikes += p.TotalLikes
	}
	if s.Users > 0 {
		s.AvgComments = float64(s.TotalComments) / float64(s.Users)
		s.AvgLikes = float64(s.TotalLikes) / float64(s.Users)
	}
	return s
}

// TopByLikes retourne les n profils les plus likés (n <= 0 : tous).
func TopByLikes(profiles []*UserProfile, n int) []*UserProfile {
	out := slices.Clone(profiles)
	slices.SortFunc(out, byEngagement)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
