// Package vocab implements required-term vocabularies and the shared
// presence checker every coverage-style indicator is built on.
package vocab

import (
	"math"

	"fairmeter/internal/terms"
)

// Requirement names one required (element, qualifier) pair. A nil qualifier
// matches any entry qualifier; otherwise the comparison is exact and
// case-sensitive, as is the element comparison.
type Requirement struct {
	Element   string
	Qualifier *string
}

// Vocabulary is an ordered list of requirements.
type Vocabulary []Requirement

// Match reports the outcome for one requirement: whether any term matched
// and the non-empty values of the matching terms, document order.
type Match struct {
	Requirement
	Found  bool
	Values []string
}

// Report is the result of checking one vocabulary against one term set.
type Report struct {
	Matches []Match
}

// Check evaluates every requirement against the set. A requirement matches a
// term iff the element is equal and the requirement qualifier is nil or equal
// to the term qualifier. Terms without values still satisfy presence.
func Check(set *terms.Set, v Vocabulary) Report {
	r := Report{Matches: make([]Match, 0, len(v))}
	for _, req := range v {
		m := Match{Requirement: req}
		for _, t := range set.ByElement(req.Element) {
			if req.Qualifier != nil && (t.Qualifier == nil || *t.Qualifier != *req.Qualifier) {
				continue
			}
			m.Found = true
			if t.HasValue() {
				m.Values = append(m.Values, *t.Value)
			}
		}
		r.Matches = append(r.Matches, m)
	}
	return r
}

// Found returns how many requirements matched.
func (r Report) Found() int {
	n := 0
	for _, m := range r.Matches {
		if m.Found {
			n++
		}
	}
	return n
}

// Coverage returns 100 * matched / total as an exact rational, rounded to the
// nearest integer only here, at the point the score is emitted. An empty
// vocabulary scores 0.
func (r Report) Coverage() int {
	if len(r.Matches) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(r.Found()) / float64(len(r.Matches))))
}

// Missing returns the requirements that did not match, in vocabulary order.
func (r Report) Missing() []Requirement {
	var out []Requirement
	for _, m := range r.Matches {
		if !m.Found {
			out = append(out, m.Requirement)
		}
	}
	return out
}
