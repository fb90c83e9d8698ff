package matching

// DefaultSynonyms groups spellings that name the same skill. Keys and values are normalized.
var DefaultSynonyms = map[string][]string{
	"go":               {"golang"},
	"javascript":       {"js", "ecmascript"},
	"typescript":       {"ts"},
	"kubernetes":       {"k8s"},
	"postgresql":       {"postgres", "psql"},
	"react":            {"reactjs", "react.js"},
	"node.js":          {"node", "nodejs"},
	"frontend":         {"front end", "front-end"},
	"backend":          {"back end", "back-end"},
	"machine learning": {"ml"},
}

// SynonymEquivalence widens a base predicate with a synonym table: two skills are equal
// when the base says so or when both resolve to the same canonical entry.
type SynonymEquivalence struct {
	Base      Equivalence
	canonical map[string]string
}

func NewSynonymEquivalence(base Equivalence, synonyms map[string][]string) SynonymEquivalence {
	if base == nil {
		base = SubstringEquivalence{}
	}
	canon := make(map[string]string, len(synonyms)*2)
	for k, vs := range synonyms {
		key := Normalize(k)
		if key == "" {
			continue
		}
		canon[key] = key
		for _, v := range vs {
			if n := Normalize(v); n != "" {
				canon[n] = key
			}
		}
	}
	return SynonymEquivalence{Base: base, canonical: canon}
}

func (s SynonymEquivalence) Equivalent(candidate, required string) bool {
	if s.Base != nil && s.Base.Equivalent(candidate, required) {
		return true
	}
	if candidate == "" || required == "" {
		return false
	}
	c, ok := s.canonical[candidate]
	if !ok {
		return false
	}
	r, ok := s.canonical[required]
	return ok && c == r
}
