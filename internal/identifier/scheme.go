// Package identifier detects persistent-identifier schemes in free-form
// strings, normalizes them to canonical form, builds resolver URLs, and
// checks resolver liveness. It is the only part of the engine that talks to
// the network.
package identifier

import (
	"regexp"
	"strings"
)

// Scheme names one identifier family.
type Scheme string

const (
	SchemeDOI      Scheme = "doi"
	SchemeHandle   Scheme = "handle"
	SchemeORCID    Scheme = "orcid"
	SchemeURL      Scheme = "url"
	SchemeInternal Scheme = "internal"
	SchemeUnknown  Scheme = "unknown"
)

var (
	doiPattern    = regexp.MustCompile(`10\.\d+/[^\s"<>]+`)
	handlePattern = regexp.MustCompile(`\b\d[\d.]*/[^\s"<>]+`)
	orcidPattern  = regexp.MustCompile(`\b\d{4}-\d{4}-\d{4}-\d{3}[\dXx]\b`)
	urlPattern    = regexp.MustCompile(`^https?://\S+$`)
)

// DetectSchemes pattern-matches raw against the known scheme shapes and
// returns the matches ordered most specific first. It never fails: an empty
// list means nothing matched. The result is deterministic for a given input.
func DetectSchemes(raw string) []Scheme {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var schemes []Scheme
	if orcidPattern.MatchString(raw) {
		schemes = append(schemes, SchemeORCID)
	}
	if doiPattern.MatchString(raw) {
		schemes = append(schemes, SchemeDOI)
	}
	if handlePattern.MatchString(raw) {
		schemes = append(schemes, SchemeHandle)
	}
	if urlPattern.MatchString(raw) {
		schemes = append(schemes, SchemeURL)
	}
	return schemes
}

// Normalize canonicalizes raw in the given scheme: it extracts the scheme's
// shape from surrounding text (resolver host prefixes included) and fixes the
// case. Unrecognized input comes back trimmed but otherwise unchanged.
func Normalize(raw string, scheme Scheme) string {
	raw = strings.TrimSpace(raw)
	switch scheme {
	case SchemeDOI:
		if m := doiPattern.FindString(raw); m != "" {
			return strings.ToLower(m)
		}
	case SchemeHandle:
		trimmed := stripResolverHost(raw)
		if m := handlePattern.FindString(trimmed); m != "" {
			return m
		}
	case SchemeORCID:
		if m := orcidPattern.FindString(raw); m != "" {
			return strings.ToUpper(m)
		}
	case SchemeURL:
		return raw
	}
	return raw
}

// ResolverURL builds the scheme-specific resolver address for raw.
func ResolverURL(raw string, scheme Scheme) string {
	switch scheme {
	case SchemeDOI:
		return "https://doi.org/" + Normalize(raw, SchemeDOI)
	case SchemeHandle:
		return "https://hdl.handle.net/" + Normalize(raw, SchemeHandle)
	case SchemeORCID:
		return "https://orcid.org/" + Normalize(raw, SchemeORCID)
	case SchemeURL:
		return Normalize(raw, SchemeURL)
	}
	return ""
}

var resolverHosts = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://hdl.handle.net/",
	"http://hdl.handle.net/",
	"https://orcid.org/",
	"http://orcid.org/",
}

func stripResolverHost(raw string) string {
	for _, h := range resolverHosts {
		if rest, ok := strings.CutPrefix(raw, h); ok {
			return rest
		}
	}
	return raw
}
