package indicator

import (
	"context"
	"fmt"
	"strings"

	"fairmeter/internal/vocab"
)

// a1_01m checks retrievability: either the record carries access terms or it
// references a recognizable data file. Either signal alone is enough.
func a1_01m(_ context.Context, ec *Context, _ Services) Result {
	access := vocab.Check(ec.Terms, vocab.AccessTerms())
	refs := dataFileRefs(ec)

	switch {
	case access.Found() > 0 && len(refs) > 0:
		return Result{Code: "RDA-A1-01M", Score: 100,
			Message: fmt.Sprintf("Access information found in metadata and data can be accessed manually: %s", strings.Join(refs, ", "))}
	case access.Found() > 0:
		return Result{Code: "RDA-A1-01M", Score: 100,
			Message: "Access information found in metadata, no direct data file reference"}
	case len(refs) > 0:
		return Result{Code: "RDA-A1-01M", Score: 100,
			Message: fmt.Sprintf("Data can be accessed manually: %s", strings.Join(refs, ", "))}
	default:
		return Result{Code: "RDA-A1-01M", Score: 0,
			Message: "No access information can be found in the metadata"}
	}
}

// a1_02m checks human accessibility of the metadata: the subject's resolver
// address must answer.
func a1_02m(ctx context.Context, ec *Context, svc Services) Result {
	return humanAccessibility(ctx, "RDA-A1-02M", ec, svc)
}

func humanAccessibility(ctx context.Context, code string, ec *Context, svc Services) Result {
	url := ec.Subject.ResolverURL()
	if url == "" {
		return Result{Code: code, Score: 0,
			Message: "The identifier has no detected scheme, so no landing page can be derived"}
	}
	if svc.alive(ctx, url) {
		return Result{Code: code, Score: 100,
			Message: "Metadata can be accessed manually at " + url}
	}
	return Result{Code: code, Score: 0,
		Message: "Metadata landing page is not reachable at " + url}
}

// a1_02d checks for access instructions on the data side: access terms in
// the record only, no landing-page probing.
func a1_02d(_ context.Context, ec *Context, _ Services) Result {
	return presenceResult("RDA-A1-02D", vocab.Check(ec.Terms, vocab.AccessTerms()),
		"Access information found in metadata", "No access information can be found in the metadata")
}

// a1_03m checks that the metadata identifier resolves.
func a1_03m(ctx context.Context, ec *Context, svc Services) Result {
	r := humanAccessibility(ctx, "RDA-A1-03M", ec, svc)
	r.Message = r.Message + " | Metadata found via identifier resolution"
	return r
}

// a1_03d checks that referenced data files can actually be downloaded. Each
// reference is probed as given and, for relative paths, against the source
// endpoint host.
func a1_03d(ctx context.Context, ec *Context, svc Services) Result {
	refs := dataFileRefs(ec)
	if len(refs) == 0 {
		return Result{Code: "RDA-A1-03D", Score: 0,
			Message: "No data file references found in the metadata"}
	}
	var alive []string
	for _, ref := range refs {
		for _, candidate := range downloadCandidates(ec.Endpoint, ref) {
			if svc.alive(ctx, candidate) {
				alive = append(alive, candidate)
				break
			}
		}
	}
	if len(alive) > 0 {
		return Result{Code: "RDA-A1-03D", Score: 100,
			Message: "Files can be downloaded: " + strings.Join(alive, ", ")}
	}
	return Result{Code: "RDA-A1-03D", Score: 0,
		Message: "Files can not be downloaded: " + strings.Join(refs, ", ")}
}

// downloadCandidates lists the URLs to probe for one file reference:
// absolute references as-is, relative ones joined to the endpoint host.
func downloadCandidates(endpoint, ref string) []string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return []string{ref}
	}
	host := endpointHost(endpoint)
	if host == "" {
		return []string{"http://" + ref}
	}
	return []string{
		"http://" + host + "/" + strings.TrimPrefix(ref, "/"),
		"http://" + ref,
	}
}

func endpointHost(endpoint string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// a1_04m checks that a standardised protocol for metadata access was
// declared.
func a1_04m(_ context.Context, ec *Context, _ Services) Result {
	if ec.HasProtocols() {
		return Result{Code: "RDA-A1-04M", Score: 100,
			Message: "Metadata can be accessed through these protocols: " + strings.Join(ec.Protocols(), ", ")}
	}
	return Result{Code: "RDA-A1-04M", Score: 0,
		Message: "No protocols found to access metadata"}
}

// a1_04d reuses the download check and reports it in protocol terms.
func a1_04d(ctx context.Context, ec *Context, svc Services) Result {
	r := a1_03d(ctx, ec, svc)
	r.Code = "RDA-A1-04D"
	if r.Score == 100 {
		r.Message = "Files can be downloaded using the HTTP GET protocol"
	} else {
		r.Message = "No protocol for downloading data can be found"
	}
	return r
}

// a1_05d: OAI-PMH exposes metadata, not the objects themselves, so
// machine-actionable data access cannot be granted through it.
func a1_05d(_ context.Context, _ *Context, _ Services) Result {
	return Result{Code: "RDA-A1-05D", Score: 0,
		Message: "OAI-PMH does not support machine-actionable access to data"}
}

// a1_1_01m checks that the declared metadata access protocols are free to
// use.
func a1_1_01m(_ context.Context, ec *Context, _ Services) Result {
	if ec.HasProtocols() {
		return Result{Code: "RDA-A1.1-01M", Score: 100,
			Message: "Metadata is accessible using these free protocols: " + strings.Join(ec.Protocols(), ", ")}
	}
	return Result{Code: "RDA-A1.1-01M", Score: 0,
		Message: "Metadata can not be accessed via free protocols"}
}

// a1_1_01d reuses the download check for the free-protocol judgement.
func a1_1_01d(ctx context.Context, ec *Context, svc Services) Result {
	r := a1_03d(ctx, ec, svc)
	r.Code = "RDA-A1.1-01D"
	if r.Score == 100 {
		r.Message = "Files can be downloaded using the free HTTP GET protocol"
	} else {
		r.Message = "No free protocol for downloading data can be found"
	}
	return r
}

// a1_2_01d documents the protocol property without granting points: the
// harvesting protocol itself needs no authentication, but that says nothing
// about the data behind it.
func a1_2_01d(_ context.Context, _ *Context, _ Services) Result {
	return Result{Code: "RDA-A1.2-01D", Score: 0,
		Message: "OAI-PMH is an open protocol without any authorization or authentication required"}
}

// a2_01m cannot be derived from metadata alone: whether metadata survives
// data deletion is a policy of the hosting authority. Fixed midpoint score.
func a2_01m(_ context.Context, _ *Context, _ Services) Result {
	return Result{Code: "RDA-A2-01M", Score: 50,
		Message: "Preservation policy depends on the authority where this digital object is stored"}
}
