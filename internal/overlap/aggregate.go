// Package overlap regroupe les commentaires par auteur et mesure le
// recouvrement d'audience entre chaînes (buckets par nombre de chaînes,
// indice de Jaccard par paire). Aucun formatage ici : uniquement des
// structures que report et export mettent en forme.
package overlap

import (
	"iter"
	"slices"
	"strings"

	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// UserProfile accumule tout ce qu'un auteur a publié sur l'ensemble des chaînes.
//
// Invariants : TotalComments == len(Comments), TotalLikes == somme des likes,
// et l'ensemble des chaînes est exactement celui des commentaires.
type UserProfile struct {
	AuthorID      string
	Comments      []model.CommentRecord // ordre de découverte
	TotalLikes    int
	TotalComments int

	channels  model.ChannelSet
	usernames map[string]struct{}

	// nom du commentaire le plus ancien, voir DisplayName
	displayName string
	displayAt   string
}

func newUserProfile(id string) *UserProfile {
	return &UserProfile{
		AuthorID:  id,
		channels:  make(model.ChannelSet),
		usernames: make(map[string]struct{}),
	}
}

func (p *UserProfile) add(rec model.CommentRecord) {
	p.Comments = append(p.Comments, rec)
	p.channels.Add(rec.Channel)
	p.TotalLikes += rec.LikeCount
	p.TotalComments++

	name := rec.AuthorName
	if name == "" {
		name = model.UnknownAuthor
	}
	p.usernames[name] = struct{}{}

	if p.displayName == "" || earlier(rec.PublishedAt, name, p.displayAt, p.displayName) {
		p.displayName = name
		p.displayAt = rec.PublishedAt
	}
}

// earlier compare (date, nom) ; une date vide passe après toutes les autres.
func earlier(at, name, refAt, refName string) bool {
	switch {
	case at == refAt:
		return name < refName
	case at == "":
		return false
	case refAt == "":
		return true
	default:
		return at < refAt
	}
}

// Channels retourne les chaînes de l'auteur, triées.
func (p *UserProfile) Channels() []model.Channel {
	return p.channels.Sorted()
}

func (p *UserProfile) ChannelCount() int {
	return len(p.channels)
}

func (p *UserProfile) HasChannel(c model.Channel) bool {
	return p.channels.Has(c)
}

// Usernames retourne tous les noms affichés observés, triés.
func (p *UserProfile) Usernames() []string {
	out := make([]string, 0, len(p.usernames))
	for n := range p.usernames {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// DisplayName est le nom porté par le commentaire le plus ancien
// (PublishedAt), à égalité le plus petit nom. Indépendant de l'ordre de visite.
func (p *UserProfile) DisplayName() string {
	if p.displayName == "" {
		return model.UnknownAuthor
	}
	return p.displayName
}

// ChannelTally : commentaires et likes d'un auteur sur une chaîne.
type ChannelTally struct {
	Channel  model.Channel
	Comments int
	Likes    int
}

// PerChannel ventile les commentaires par chaîne, triée par libellé.
func (p *UserProfile) PerChannel() []ChannelTally {
	idx := make(map[model.Channel]int, len(p.channels))
	var out []ChannelTally
	for _, c := range p.Comments {
		i, ok := idx[c.Channel]
		if !ok {
			i = len(out)
			idx[c.Channel] = i
			out = append(out, ChannelTally{Channel: c.Channel})
		}
		out[i].Comments++
		out[i].Likes += c.LikeCount
	}
	slices.SortFunc(out, func(a, b ChannelTally) int {
		return strings.Compare(string(a.Channel), string(b.Channel))
	})
	return out
}

// Users associe un author_id à son profil.
type Users map[string]*UserProfile

// Add range rec dans le profil de son auteur (créé au besoin).
// Un enregistrement sans auteur est ignoré ; retourne false dans ce cas.
func (u Users) Add(rec model.CommentRecord) bool {
	if !rec.Attributable() {
		return false
	}
	p, ok := u[rec.AuthorID]
	if !ok {
		p = newUserProfile(rec.AuthorID)
		u[rec.AuthorID] = p
	}
	p.add(rec)
	return true
}

// AddAll consomme seq et retourne le nombre d'enregistrements retenus.
func (u Users) AddAll(seq iter.Seq[model.CommentRecord]) int {
	n := 0
	for rec := range seq {
		if u.Add(rec) {
			n++
		}
	}
	return n
}

// IDs retourne les author_id triés.
func (u Users) IDs() []string {
	out := make([]string, 0, len(u))
	for id := range u {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
