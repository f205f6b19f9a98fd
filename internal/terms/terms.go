// Package terms holds the canonical representation of a harvested metadata
// record: an ordered sequence of (schema, element, qualifier, value) terms.
// Every indicator reads this model and nothing else.
package terms

// Term is a single metadata unit extracted from a record. Schema is the
// namespace URI ("" when the element carried none). Qualifier and Value are
// nil when absent; a term without a value still counts for presence checks.
type Term struct {
	Schema    string
	Element   string
	Qualifier *string
	Value     *string
}

// HasValue reports whether the term carries non-empty text.
func (t Term) HasValue() bool {
	return t.Value != nil && *t.Value != ""
}

// Set is an ordered sequence of terms. Insertion order is document order and
// duplicates are preserved. A Set is append-only until Freeze, after which it
// is immutable and safe for concurrent readers; Freeze builds the element and
// schema indexes so indicators avoid repeated linear scans.
type Set struct {
	terms     []Term
	frozen    bool
	byElement map[string][]int
	schemas   []string
}

// NewSet returns an empty, unfrozen set. A failed harvest yields an empty
// frozen set, never a nil one; callers must not special-case absence.
func NewSet() *Set {
	return &Set{}
}

// Append adds a term. Appends after Freeze are ignored.
func (s *Set) Append(t Term) {
	if s.frozen {
		return
	}
	s.terms = append(s.terms, t)
}

// Freeze makes the set immutable and builds lookup indexes. Freezing an
// already frozen set is a no-op.
func (s *Set) Freeze() *Set {
	if s.frozen {
		return s
	}
	s.frozen = true
	s.byElement = make(map[string][]int, len(s.terms))
	seen := make(map[string]struct{})
	for i, t := range s.terms {
		s.byElement[t.Element] = append(s.byElement[t.Element], i)
		if _, ok := seen[t.Schema]; !ok {
			seen[t.Schema] = struct{}{}
			s.schemas = append(s.schemas, t.Schema)
		}
	}
	return s
}

// Len returns the number of terms.
func (s *Set) Len() int {
	return len(s.terms)
}

// At returns the term at position i in document order.
func (s *Set) At(i int) Term {
	return s.terms[i]
}

// All returns the terms in document order. The returned slice is shared and
// must not be modified.
func (s *Set) All() []Term {
	return s.terms
}

// ByElement returns all terms with the given element name, document order.
func (s *Set) ByElement(element string) []Term {
	if s.frozen {
		idxs := s.byElement[element]
		out := make([]Term, 0, len(idxs))
		for _, i := range idxs {
			out = append(out, s.terms[i])
		}
		return out
	}
	var out []Term
	for _, t := range s.terms {
		if t.Element == element {
			out = append(out, t)
		}
	}
	return out
}

// Values returns the non-empty values of all terms with the given element.
func (s *Set) Values(element string) []string {
	var out []string
	for _, t := range s.ByElement(element) {
		if t.HasValue() {
			out = append(out, *t.Value)
		}
	}
	return out
}

// Schemas returns the distinct namespace URIs in first-seen order. Only
// available on a frozen set; an unfrozen set computes it on the fly.
func (s *Set) Schemas() []string {
	if s.frozen {
		return s.schemas
	}
	var out []string
	seen := make(map[string]struct{})
	for _, t := range s.terms {
		if _, ok := seen[t.Schema]; !ok {
			seen[t.Schema] = struct{}{}
			out = append(out, t.Schema)
		}
	}
	return out
}

// String is a convenience for building *string fields in literals and tests.
func String(s string) *string {
	return &s
}
