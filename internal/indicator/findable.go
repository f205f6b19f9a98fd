package indicator

import (
	"context"
	"math"

	"fairmeter/internal/identifier"
	"fairmeter/internal/vocab"
)

// f1_01m checks that the record's identifier terms carry at least one typed
// persistent identifier.
func f1_01m(_ context.Context, ec *Context, _ Services) Result {
	return persistenceResult("RDA-F1-01M", subjectIdentifiers(ec), "Your (meta)data")
}

// f1_01d reuses the metadata persistence check: data and metadata are
// harvested together, so the same identifiers describe both.
func f1_01d(ctx context.Context, ec *Context, svc Services) Result {
	r := f1_01m(ctx, ec, svc)
	r.Code = "RDA-F1-01D"
	return r
}

// f1_02m checks global uniqueness: an identifier that is only a URL is
// reachable but not unique, so the bare-URL scheme is filtered out before
// judging persistence.
func f1_02m(_ context.Context, ec *Context, _ Services) Result {
	ids := withoutURLScheme(subjectIdentifiers(ec))
	r := persistenceResult("RDA-F1-02M", ids, "Your (meta)data")
	if r.Score == 0 && len(ids) > 0 {
		if onlyURLs(ec) {
			r.Message = "Your (meta)data is identified only by URL identifiers: " + describeIdentifiers(subjectIdentifiers(ec))
		}
	}
	return r
}

func onlyURLs(ec *Context) bool {
	ids := subjectIdentifiers(ec)
	anyScheme := false
	for _, id := range ids {
		for _, s := range id.Schemes {
			anyScheme = true
			if s != identifier.SchemeURL {
				return false
			}
		}
	}
	return anyScheme
}

func f1_02d(ctx context.Context, ec *Context, svc Services) Result {
	r := f1_02m(ctx, ec, svc)
	r.Code = "RDA-F1-02D"
	return r
}

// f2_01m measures richness of description: the mean of a generic Dublin
// Core coverage and a disciplinary coverage. Until community profiles ship
// their own discovery vocabularies the disciplinary pass reuses Dublin Core,
// which keeps the averaging structure in place.
func f2_01m(_ context.Context, ec *Context, _ Services) Result {
	generic := coverageResult("RDA-F2-01M", vocab.Check(ec.Terms, vocab.DublinCore()), "Checking Dublin Core")
	disciplinar := coverageResult("RDA-F2-01M", vocab.Check(ec.Terms, vocab.DublinCore()), "Checking Dublin Core as multidisciplinary schema")
	return Result{
		Code:    "RDA-F2-01M",
		Score:   int(math.Round(float64(generic.Score+disciplinar.Score) / 2)),
		Message: generic.Message + " | " + disciplinar.Message,
	}
}

// f3_01m checks that the metadata includes the digital object's own
// identifier. The judgement is the persistence check again, reported from
// the data side.
func f3_01m(_ context.Context, ec *Context, _ Services) Result {
	return persistenceResult("RDA-F3-01M", subjectIdentifiers(ec), "Your data")
}

// f4_01m checks indexability: a harvestable record with any terms at all is
// discoverable by a harvester.
func f4_01m(_ context.Context, ec *Context, _ Services) Result {
	if ec.Terms.Len() > 0 {
		return Result{Code: "RDA-F4-01M", Score: 100, Message: "Your digital object is available via the OAI-PMH harvesting protocol"}
	}
	return Result{Code: "RDA-F4-01M", Score: 0, Message: "Your digital object is not available via OAI-PMH harvesting"}
}
