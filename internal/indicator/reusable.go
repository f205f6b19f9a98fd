package indicator

import (
	"context"

	"fairmeter/internal/vocab"
)

const noProfileMessage = "No community metadata profile is configured for this digital object. " +
	"Provide a discipline catalog entry to enable this check."

// r1_01m concerns the overall quality of the attributes, which cannot be
// judged mechanically from term presence alone. Fixed midpoint until a
// quality heuristic exists.
func r1_01m(_ context.Context, _ *Context, _ Services) Result {
	return Result{Code: "RDA-R1-01M", Score: 50,
		Message: "Attribute richness can not be judged automatically from term presence alone"}
}

// r1_1_01m checks that any usage license is declared at all.
func r1_1_01m(_ context.Context, ec *Context, _ Services) Result {
	if len(ec.Terms.ByElement("license")) > 0 {
		return Result{Code: "RDA-R1.1-01M", Score: 100,
			Message: "Your digital object includes license information"}
	}
	return Result{Code: "RDA-R1.1-01M", Score: 0,
		Message: "You should include information about the license"}
}

// r1_1_02m checks that the declared license is a standard one: its value
// must resolve as a URL on its own.
func r1_1_02m(ctx context.Context, ec *Context, svc Services) Result {
	return licenseStandardness(ctx, "RDA-R1.1-02M", ec, svc)
}

// r1_1_03m checks machine-readability of the license, which for a
// URL-valued license is the same resolvability property.
func r1_1_03m(ctx context.Context, ec *Context, svc Services) Result {
	return licenseStandardness(ctx, "RDA-R1.1-03M", ec, svc)
}

func licenseStandardness(ctx context.Context, code string, ec *Context, svc Services) Result {
	for _, v := range ec.Terms.Values("license") {
		if svc.alive(ctx, v) {
			return Result{Code: code, Score: 100,
				Message: "Your license refers to a standard reuse license"}
		}
	}
	return Result{Code: code, Score: 0,
		Message: "Your license is not included or does not refer to a standard reuse license"}
}

// The provenance and community-standard indicators depend on a discipline
// profile. Without one they report a fixed explanation instead of guessing;
// with one they score coverage of the profile's required elements.

func r1_2_01m(_ context.Context, ec *Context, svc Services) Result {
	return profileCoverage("RDA-R1.2-01M", ec, svc, provenanceCheck)
}

func r1_2_02m(_ context.Context, ec *Context, svc Services) Result {
	return profileCoverage("RDA-R1.2-02M", ec, svc, provenanceCheck)
}

func r1_3_01m(_ context.Context, ec *Context, svc Services) Result {
	return profileCoverage("RDA-R1.3-01M", ec, svc, standardsCheck)
}

// r1_3_01d judges the data format against the community standard, which is
// only possible once a profile names the accepted formats.
func r1_3_01d(_ context.Context, ec *Context, svc Services) Result {
	r := profileCoverage("RDA-R1.3-01D", ec, svc, standardsCheck)
	if r.Score == 0 && r.Message == noProfileMessage {
		r.Message = "Whether your data format complies with community standards can not be judged without a community metadata profile"
	}
	return r
}

func r1_3_02m(_ context.Context, ec *Context, svc Services) Result {
	return profileCoverage("RDA-R1.3-02M", ec, svc, standardsCheck)
}

func r1_3_02d(ctx context.Context, ec *Context, svc Services) Result {
	r := r1_3_02m(ctx, ec, svc)
	r.Code = "RDA-R1.3-02D"
	return r
}

type profileCheck int

const (
	provenanceCheck profileCheck = iota
	standardsCheck
)

func profileCoverage(code string, ec *Context, svc Services, check profileCheck) Result {
	profile, ok := svc.profile()
	if !ok {
		return Result{Code: code, Score: 0, Message: noProfileMessage}
	}
	var v vocab.Vocabulary
	var label string
	switch check {
	case provenanceCheck:
		v, label = profile.ProvenanceVocabulary(), "provenance"
	default:
		v, label = profile.StandardsVocabulary(), "community standard"
	}
	if len(v) == 0 {
		return Result{Code: code, Score: 0,
			Message: "The " + profile.Name + " profile does not define " + label + " requirements"}
	}
	return coverageResult(code, vocab.Check(ec.Terms, v), "Checking "+profile.Name+" "+label+" terms")
}
