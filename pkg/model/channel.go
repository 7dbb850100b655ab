package model

import (
	"slices"
	"strings"
)

// Channel est le libellé d'une source de commentaires (ex: "India").
// Il est dérivé du nom du dossier de la chaîne.
type Channel string

func (c Channel) String() string {
	return string(c)
}

// ChannelSet est un ensemble non ordonné de libellés.
type ChannelSet map[Channel]struct{}

func (s ChannelSet) Add(c Channel) {
	s[c] = struct{}{}
}

func (s ChannelSet) Has(c Channel) bool {
	_, ok := s[c]
	return ok
}

// Sorted retourne les libellés triés par ordre lexicographique.
func (s ChannelSet) Sorted() []Channel {
	out := make([]Channel, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	SortChannels(out)
	return out
}

// SortChannels trie sur place, ordre lexicographique du libellé.
func SortChannels(cs []Channel) {
	slices.SortFunc(cs, func(a, b Channel) int {
		return strings.Compare(string(a), string(b))
	})
}
