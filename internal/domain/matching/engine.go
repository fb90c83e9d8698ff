package matching

import (
	"math"
	"strings"
)

// Equivalence decides whether a normalized candidate skill satisfies a normalized required skill.
type Equivalence interface {
	Equivalent(candidate, required string) bool
}

// SubstringEquivalence treats two skills as equal when either contains the other.
type SubstringEquivalence struct{}

func (SubstringEquivalence) Equivalent(candidate, required string) bool {
	if candidate == "" || required == "" {
		return false
	}
	return strings.Contains(required, candidate) || strings.Contains(candidate, required)
}

type Result struct {
	MatchPercentage float64
	MatchedSkills   []string
	MissingSkills   []string
}

type Matcher struct {
	eq Equivalence
}

func NewMatcher(eq Equivalence) *Matcher {
	if eq == nil {
		eq = SubstringEquivalence{}
	}
	return &Matcher{eq: eq}
}

var defaultMatcher = NewMatcher(SubstringEquivalence{})

// Match scores candidateSkills against requiredSkills with the substring matcher.
func Match(candidateSkills, requiredSkills []string) Result {
	return defaultMatcher.Match(candidateSkills, requiredSkills)
}

// Match partitions requiredSkills into matched and missing. Duplicates in requiredSkills
// are scored individually. An empty requirement list scores zero.
func (m *Matcher) Match(candidateSkills, requiredSkills []string) Result {
	res := Result{
		MatchedSkills: make([]string, 0, len(requiredSkills)),
		MissingSkills: make([]string, 0),
	}
	if len(requiredSkills) == 0 {
		return res
	}

	candidates := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		candidates = append(candidates, n)
	}

	for _, raw := range requiredSkills {
		req := Normalize(raw)
		label := strings.TrimSpace(raw)
		if m.satisfied(candidates, req) {
			res.MatchedSkills = append(res.MatchedSkills, label)
			continue
		}
		res.MissingSkills = append(res.MissingSkills, label)
	}

	if len(candidates) == 0 {
		return res
	}

	pct := 100 * float64(len(res.MatchedSkills)) / float64(len(requiredSkills))
	res.MatchPercentage = math.Round(pct*100) / 100
	return res
}

func (m *Matcher) satisfied(candidates []string, req string) bool {
	if req == "" {
		return false
	}
	for _, c := range candidates {
		if m.eq.Equivalent(c, req) {
			return true
		}
	}
	return false
}

func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
