package identifier

// Identifier is a subject or referenced identifier with its detected schemes
// (most specific first) and the canonical form per scheme. Built once and
// read-only afterwards.
type Identifier struct {
	Raw        string
	Schemes    []Scheme
	normalized map[Scheme]string
}

// Parse detects the schemes of raw and precomputes the canonical form for
// each. Parsing never fails; an identifier with no detected schemes simply
// has an empty scheme list.
func Parse(raw string) Identifier {
	id := Identifier{
		Raw:        raw,
		Schemes:    DetectSchemes(raw),
		normalized: make(map[Scheme]string),
	}
	for _, s := range id.Schemes {
		id.normalized[s] = Normalize(raw, s)
	}
	return id
}

// IsPersistent reports whether any detected scheme is a typed persistent
// scheme. A bare URL is reachable but not persistent.
func (id Identifier) IsPersistent() bool {
	for _, s := range id.Schemes {
		if s != SchemeURL {
			return true
		}
	}
	return false
}

// NormalizedIn returns the canonical form of the identifier in the given
// scheme. When the scheme was not detected the raw value is normalized on
// the fly, so cross-scheme comparisons stay well-defined.
func (id Identifier) NormalizedIn(scheme Scheme) string {
	if v, ok := id.normalized[scheme]; ok {
		return v
	}
	return Normalize(id.Raw, scheme)
}

// Primary returns the most specific detected scheme, SchemeUnknown when
// nothing was detected.
func (id Identifier) Primary() Scheme {
	if len(id.Schemes) == 0 {
		return SchemeUnknown
	}
	return id.Schemes[0]
}

// ResolverURL builds the resolver address in the primary scheme, "" when no
// scheme was detected.
func (id Identifier) ResolverURL() string {
	if len(id.Schemes) == 0 {
		return ""
	}
	return ResolverURL(id.Raw, id.Primary())
}
