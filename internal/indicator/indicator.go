package indicator

import (
	"context"

	"fairmeter/internal/discipline"
	"fairmeter/internal/identifier"
)

// Facet groups indicators by FAIR principle family.
type Facet string

const (
	FacetFindable      Facet = "findable"
	FacetAccessible    Facet = "accessible"
	FacetInteroperable Facet = "interoperable"
	FacetReusable      Facet = "reusable"
)

// Services are the collaborators an indicator may call out to. Liveness is
// the only path to the network; Profiles supplies community metadata
// profiles for the discipline-dependent checks and may be empty.
type Services struct {
	Liveness identifier.LivenessChecker
	Profiles *discipline.Catalog
	Profile  string
}

func (s Services) alive(ctx context.Context, url string) bool {
	if s.Liveness == nil {
		return false
	}
	return s.Liveness.Alive(ctx, url)
}

func (s Services) profile() (discipline.Profile, bool) {
	if s.Profiles == nil || s.Profile == "" {
		return discipline.Profile{}, false
	}
	return s.Profiles.Profile(s.Profile)
}

// Func evaluates one indicator against an evaluation context. Implementations
// are pure apart from liveness probes and must always return a result.
type Func func(ctx context.Context, ec *Context, svc Services) Result

// Indicator is one catalog entry.
type Indicator struct {
	Code  string
	Facet Facet
	Eval  Func
}

// Catalog returns the full ordered indicator catalog. The order is the
// report order; data-object entries that reuse their metadata counterpart do
// so by calling it, never by duplicating its logic.
func Catalog() []Indicator {
	return []Indicator{
		{"RDA-F1-01M", FacetFindable, f1_01m},
		{"RDA-F1-01D", FacetFindable, f1_01d},
		{"RDA-F1-02M", FacetFindable, f1_02m},
		{"RDA-F1-02D", FacetFindable, f1_02d},
		{"RDA-F2-01M", FacetFindable, f2_01m},
		{"RDA-F3-01M", FacetFindable, f3_01m},
		{"RDA-F4-01M", FacetFindable, f4_01m},
		{"RDA-A1-01M", FacetAccessible, a1_01m},
		{"RDA-A1-02M", FacetAccessible, a1_02m},
		{"RDA-A1-02D", FacetAccessible, a1_02d},
		{"RDA-A1-03M", FacetAccessible, a1_03m},
		{"RDA-A1-03D", FacetAccessible, a1_03d},
		{"RDA-A1-04M", FacetAccessible, a1_04m},
		{"RDA-A1-04D", FacetAccessible, a1_04d},
		{"RDA-A1-05D", FacetAccessible, a1_05d},
		{"RDA-A1.1-01M", FacetAccessible, a1_1_01m},
		{"RDA-A1.1-01D", FacetAccessible, a1_1_01d},
		{"RDA-A1.2-01D", FacetAccessible, a1_2_01d},
		{"RDA-A2-01M", FacetAccessible, a2_01m},
		{"RDA-I1-01M", FacetInteroperable, i1_01m},
		{"RDA-I1-01D", FacetInteroperable, i1_01d},
		{"RDA-I1-02M", FacetInteroperable, i1_02m},
		{"RDA-I1-02D", FacetInteroperable, i1_02d},
		{"RDA-I2-01M", FacetInteroperable, i2_01m},
		{"RDA-I2-01D", FacetInteroperable, i2_01d},
		{"RDA-I3-01M", FacetInteroperable, i3_01m},
		{"RDA-I3-01D", FacetInteroperable, i3_01d},
		{"RDA-I3-02M", FacetInteroperable, i3_02m},
		{"RDA-I3-02D", FacetInteroperable, i3_02d},
		{"RDA-I3-03M", FacetInteroperable, i3_03m},
		{"RDA-I3-04M", FacetInteroperable, i3_04m},
		{"RDA-R1-01M", FacetReusable, r1_01m},
		{"RDA-R1.1-01M", FacetReusable, r1_1_01m},
		{"RDA-R1.1-02M", FacetReusable, r1_1_02m},
		{"RDA-R1.1-03M", FacetReusable, r1_1_03m},
		{"RDA-R1.2-01M", FacetReusable, r1_2_01m},
		{"RDA-R1.2-02M", FacetReusable, r1_2_02m},
		{"RDA-R1.3-01M", FacetReusable, r1_3_01m},
		{"RDA-R1.3-01D", FacetReusable, r1_3_01d},
		{"RDA-R1.3-02M", FacetReusable, r1_3_02m},
		{"RDA-R1.3-02D", FacetReusable, r1_3_02d},
	}
}
