package indicator

import (
	"fmt"
	"strings"

	"fairmeter/internal/identifier"
	"fairmeter/internal/vocab"
)

// Shared building blocks for the catalog. Most indicators differ only in
// which vocabulary they check and how they word the outcome; the handful
// with genuinely unique logic live in their facet files.

// coverageResult scores a vocabulary check as requirement coverage.
func coverageResult(code string, report vocab.Report, prefix string) Result {
	score := report.Coverage()
	var b strings.Builder
	b.WriteString(prefix)
	if score == 100 {
		b.WriteString("... all mandatory terms included")
	} else {
		b.WriteString("... missing terms:")
		for _, req := range report.Missing() {
			fmt.Fprintf(&b, " | term: %s, qualifier: %s", req.Element, qualifierLabel(req.Qualifier))
		}
	}
	return Result{Code: code, Score: score, Message: b.String()}
}

// presenceResult scores a vocabulary check as all-or-nothing presence: any
// matched requirement yields 100.
func presenceResult(code string, report vocab.Report, foundMsg, missingMsg string) Result {
	if report.Found() == 0 {
		return Result{Code: code, Score: 0, Message: missingMsg}
	}
	var found []string
	for _, m := range report.Matches {
		if m.Found {
			found = append(found, m.Element)
		}
	}
	return Result{Code: code, Score: 100, Message: foundMsg + ": " + strings.Join(found, ", ")}
}

func qualifierLabel(q *string) string {
	if q == nil {
		return "any"
	}
	return *q
}

// subjectIdentifiers parses every value of the identifier-carrying terms.
// Terms without values contribute nothing.
func subjectIdentifiers(ec *Context) []identifier.Identifier {
	var ids []identifier.Identifier
	for _, req := range vocab.IdentifierTerms() {
		for _, v := range ec.Terms.Values(req.Element) {
			ids = append(ids, identifier.Parse(v))
		}
	}
	return ids
}

// describeIdentifiers renders "| value: [schemes] |" fragments the way the
// persistence indicators report them.
func describeIdentifiers(ids []identifier.Identifier) string {
	var b strings.Builder
	for _, id := range ids {
		schemes := make([]string, 0, len(id.Schemes))
		for _, s := range id.Schemes {
			schemes = append(schemes, string(s))
		}
		fmt.Fprintf(&b, "| %s: [%s] ", id.Raw, strings.Join(schemes, ", "))
	}
	b.WriteString("|")
	return b.String()
}

// withoutURLScheme returns a copy of the identifier list with the bare-URL
// scheme filtered out of each entry. The input is never modified; the
// uniqueness indicator judges persistence on what remains.
func withoutURLScheme(ids []identifier.Identifier) []identifier.Identifier {
	out := make([]identifier.Identifier, 0, len(ids))
	for _, id := range ids {
		filtered := identifier.Identifier{Raw: id.Raw}
		for _, s := range id.Schemes {
			if s != identifier.SchemeURL {
				filtered.Schemes = append(filtered.Schemes, s)
			}
		}
		out = append(out, filtered)
	}
	return out
}

// persistenceResult implements the shared persistence judgement: any typed
// scheme on any identifier term scores 100.
func persistenceResult(code string, ids []identifier.Identifier, subject string) Result {
	var persistent, other []identifier.Identifier
	for _, id := range ids {
		if id.IsPersistent() {
			persistent = append(persistent, id)
		} else if len(id.Schemes) > 0 {
			other = append(other, id)
		}
	}
	switch {
	case len(persistent) > 0:
		return Result{
			Code:    code,
			Score:   100,
			Message: subject + " is identified with this identifier(s) and type(s): " + describeIdentifiers(persistent),
		}
	case len(other) > 0:
		return Result{
			Code:    code,
			Score:   0,
			Message: subject + " is identified by non-persistent identifiers: " + describeIdentifiers(other),
		}
	default:
		return Result{
			Code:    code,
			Score:   0,
			Message: subject + " is not identified by persistent identifiers",
		}
	}
}

// dataFileExtensions is the allow-list of file suffixes that count as a
// downloadable data file reference inside record values.
var dataFileExtensions = []string{
	".txt", ".pdf", ".csv", ".nc", ".doc", ".xls",
	".zip", ".rar", ".tar", ".png", ".jpg",
}

// dataFileRefs collects term values that look like references to data
// files, document order, duplicates removed.
func dataFileRefs(ec *Context) []string {
	var refs []string
	seen := make(map[string]struct{})
	for _, t := range ec.Terms.All() {
		if !t.HasValue() {
			continue
		}
		v := *t.Value
		lower := strings.ToLower(v)
		for _, ext := range dataFileExtensions {
			if strings.HasSuffix(lower, ext) || strings.Contains(lower, ext+"?") {
				if _, ok := seen[v]; !ok {
					seen[v] = struct{}{}
					refs = append(refs, v)
				}
				break
			}
		}
	}
	return refs
}
