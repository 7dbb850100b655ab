package dataset

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/ytaudience/pkg/model"
)

// Policy décide du sort d'un dossier qui ne correspond à aucune règle.
type Policy string

const (
	PolicyKeep Policy = "keep" // libellé = nom du dossier
	PolicySkip Policy = "skip" // dossier ignoré
)

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyKeep):
		return PolicyKeep, nil
	case string(PolicySkip):
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("politique de dossier inconnue: %q (keep|skip)", s)
	}
}

// Rule associe un libellé de chaîne aux sous-chaînes cherchées dans le nom
// du dossier. Match vide -> le libellé lui-même sert de motif.
type Rule struct {
	Label model.Channel
	Match []string
}

// ChannelMapper résout un nom de dossier en libellé de chaîne.
// Les règles sont testées dans l'ordre, la première qui matche gagne.
type ChannelMapper struct {
	rules  []Rule
	policy Policy
}

func NewChannelMapper(rules []Rule, policy Policy) *ChannelMapper {
	cp := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if strings.TrimSpace(string(r.Label)) == "" {
			continue
		}
		pats := make([]string, 0, len(r.Match)+1)
		for _, m := range r.Match {
			if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
				pats = append(pats, m)
			}
		}
		if len(pats) == 0 {
			pats = append(pats, strings.ToLower(string(r.Label)))
		}
		cp = append(cp, Rule{Label: r.Label, Match: pats})
	}
	if policy == "" {
		policy = PolicyKeep
	}
	return &ChannelMapper{rules: cp, policy: policy}
}

// Resolve retourne le libellé du dossier, et false s'il doit être ignoré.
func (m *ChannelMapper) Resolve(folder string) (model.Channel, bool) {
	lower := strings.ToLower(folder)
	for _, r := range m.rules {
		for _, pat := range r.Match {
			if strings.Contains(lower, pat) {
				return r.Label, true
			}
		}
	}
	if m.policy == PolicySkip {
		return "", false
	}
	return model.Channel(folder), true
}

// Labels retourne les libellés configurés, dans l'ordre des règles.
func (m *ChannelMapper) Labels() []model.Channel {
	out := make([]model.Channel, 0, len(m.rules))
	for _, r := range m.rules {
		out = append(out, r.Label)
	}
	return out
}

func (m *ChannelMapper) Policy() Policy {
	return m.policy
}
