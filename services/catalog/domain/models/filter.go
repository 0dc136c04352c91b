package models

import "strings"

// FilterAny is the wildcard value for string-valued filter fields.
const FilterAny = "any"

// Filter is a member's narrowing criteria for the candidate queue. The zero
// value matches everything. Changing a filter never invalidates recorded
// swipes; it only narrows what the queue builder offers next.
type Filter struct {
	Species    string   `json:"species"`
	Gender     string   `json:"gender"`
	StartsWith string   `json:"starts_with"` // single letter, or "any"
	MinLength  int      `json:"min_length"`  // 0 = unbounded
	MaxLength  int      `json:"max_length"`  // 0 = unbounded
	Sets       []string `json:"sets"`        // enabled set slugs; empty = all
}

// Normalized returns a copy with wildcard spellings collapsed: empty strings
// and "any" (any case) both mean unrestricted.
func (f Filter) Normalized() Filter {
	norm := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == FilterAny {
			return ""
		}
		return s
	}
	f.Species = norm(f.Species)
	f.Gender = norm(f.Gender)
	f.StartsWith = norm(f.StartsWith)
	return f
}

// Contradictory reports whether the bounds can never be satisfied. A
// contradictory filter yields an empty candidate set, never an error.
func (f Filter) Contradictory() bool {
	return f.MinLength > 0 && f.MaxLength > 0 && f.MinLength > f.MaxLength
}

// Matches reports whether the name satisfies the (normalized) filter.
func (f Filter) Matches(n Name) bool {
	if f.Species != "" && !strings.EqualFold(n.Species, f.Species) && !strings.EqualFold(n.Species, FilterAny) {
		return false
	}
	if f.Gender != "" && !strings.EqualFold(n.Gender, f.Gender) && !strings.EqualFold(n.Gender, "neutral") {
		return false
	}
	if f.StartsWith != "" && !strings.HasPrefix(strings.ToLower(n.Text), f.StartsWith) {
		return false
	}
	if f.MinLength > 0 && n.Length() < f.MinLength {
		return false
	}
	if f.MaxLength > 0 && n.Length() > f.MaxLength {
		return false
	}
	if len(f.Sets) > 0 {
		found := false
		for _, slug := range f.Sets {
			if strings.EqualFold(slug, n.SetSlug) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
