package matching

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldSkill returns the comparison key of a skill label.
func foldSkill(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Matches reports whether candidateSkill satisfies requiredSkill: the labels are
// equal after case folding or one contains the other. "SQL" therefore satisfies
// "PostgreSQL" and vice versa, and short tokens can produce false positives.
func Matches(candidateSkill, requiredSkill string) bool {
	c := foldSkill(candidateSkill)
	r := foldSkill(requiredSkill)
	if c == "" || r == "" {
		return false
	}
	if c == r {
		return true
	}
	return strings.Contains(c, r) || strings.Contains(r, c)
}

// NormalizeSkills trims labels, drops empty ones and removes duplicates that
// only differ by case. The first spelling and the input order are kept.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := foldSkill(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func matchesAny(candidateSkills []string, required string) bool {
	for _, c := range candidateSkills {
		if Matches(c, required) {
			return true
		}
	}
	return false
}
