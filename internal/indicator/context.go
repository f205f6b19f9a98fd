// Package indicator implements the catalog of FAIR indicator evaluators and
// the engine that runs them over one normalized evaluation context.
package indicator

import (
	"sort"

	"fairmeter/internal/identifier"
	"fairmeter/internal/terms"
)

// Context carries everything an indicator may read: the subject identifier,
// the frozen term set, the declared access protocols and the source
// endpoint. It is assembled once per assessment and never mutated; every
// indicator receives the same reference.
type Context struct {
	Subject   identifier.Identifier
	Terms     *terms.Set
	Endpoint  string
	protocols map[string]struct{}
}

// NewContext builds an immutable evaluation context. A nil term set is
// replaced by an empty frozen one so indicators never see absence.
func NewContext(subject identifier.Identifier, set *terms.Set, endpoint string, protocols []string) *Context {
	if set == nil {
		set = terms.NewSet().Freeze()
	}
	c := &Context{
		Subject:   subject,
		Terms:     set,
		Endpoint:  endpoint,
		protocols: make(map[string]struct{}, len(protocols)),
	}
	for _, p := range protocols {
		c.protocols[p] = struct{}{}
	}
	return c
}

// Protocols returns the declared access protocols in stable order.
func (c *Context) Protocols() []string {
	out := make([]string, 0, len(c.protocols))
	for _, p := range []string{"http", "https", "oai-pmh", "ftp"} {
		if _, ok := c.protocols[p]; ok {
			out = append(out, p)
		}
	}
	// Protocols outside the well-known order are appended sorted so the
	// slice is stable across runs.
	var rest []string
	for p := range c.protocols {
		if !contains(out, p) {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// HasProtocols reports whether any access protocol was declared.
func (c *Context) HasProtocols() bool {
	return len(c.protocols) > 0
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
