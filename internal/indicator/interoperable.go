package indicator

import (
	"context"
	"fmt"
	"math"
	"strings"

	"fairmeter/internal/identifier"
)

// i1_01m checks for a formal representation language: a harvested record is
// structured XML, so any terms at all mean the representation is formal.
func i1_01m(_ context.Context, ec *Context, _ Services) Result {
	if ec.Terms.Len() > 0 {
		return Result{Code: "RDA-I1-01M", Score: 100,
			Message: "Metadata uses an interoperable representation (XML)"}
	}
	return Result{Code: "RDA-I1-01M", Score: 0,
		Message: "Metadata is not using an interoperable representation (XML)"}
}

// acceptedDataFormats is the allow-list of data formats regarded as
// community standard representations.
var acceptedDataFormats = []string{
	"pdf", "csv", "jpg", "jpeg", "nc", "hdf", "mp4", "mp3",
	"wav", "doc", "txt", "xls", "xlsx", "sgy", "zip",
}

// i1_01d checks the data representation itself. The harvesting protocol
// returns metadata only, so the format of the object behind it cannot be
// inspected; referenced file extensions on the allow-list are accepted as
// the best available evidence.
func i1_01d(_ context.Context, ec *Context, _ Services) Result {
	for _, ref := range dataFileRefs(ec) {
		lower := strings.ToLower(ref)
		for _, ext := range acceptedDataFormats {
			if strings.HasSuffix(lower, "."+ext) {
				return Result{Code: "RDA-I1-01D", Score: 100,
					Message: "The digital object is offered in an accepted standard format: " + ext}
			}
		}
	}
	return Result{Code: "RDA-I1-01D", Score: 0,
		Message: "The digital object is not offered in an accepted standard format"}
}

// i1_02m checks machine-actionability of the metadata representation.
func i1_02m(_ context.Context, ec *Context, _ Services) Result {
	if ec.Terms.Len() > 0 {
		return Result{Code: "RDA-I1-02M", Score: 100,
			Message: "Metadata can be extracted using machine-actionable features (XML)"}
	}
	return Result{Code: "RDA-I1-02M", Score: 0,
		Message: "Metadata can not be extracted using machine-actionable features"}
}

// i1_02d: there is no machine-actionable path to the data object through
// the harvesting protocol.
func i1_02d(_ context.Context, _ *Context, _ Services) Result {
	return Result{Code: "RDA-I1-02D", Score: 0,
		Message: "OAI-PMH does not currently provide an automatic protocol to retrieve the digital object"}
}

// i2_01m checks that the vocabularies in use are themselves FAIR: every
// distinct schema namespace must resolve to reachable documentation. The
// score is the resolvable fraction, rounded once at emission.
func i2_01m(ctx context.Context, ec *Context, svc Services) Result {
	schemas := ec.Terms.Schemas()
	if len(schemas) == 0 {
		return Result{Code: "RDA-I2-01M", Score: 0,
			Message: "The metadata standard documentation can not be retrieved: no schema namespaces found"}
	}
	resolvable := 0
	for _, s := range schemas {
		if s != "" && svc.alive(ctx, s) {
			resolvable++
		}
	}
	score := int(math.Round(100 * float64(resolvable) / float64(len(schemas))))
	listed := strings.Join(schemas, " ")
	switch {
	case score == 0:
		return Result{Code: "RDA-I2-01M", Score: 0,
			Message: "The metadata standard documentation can not be retrieved. Schema(s): " + listed}
	case score < 100:
		return Result{Code: "RDA-I2-01M", Score: score,
			Message: "Some of the metadata schemas used are not accessible via persistent identifier. Schema(s): " + listed}
	default:
		return Result{Code: "RDA-I2-01M", Score: 100,
			Message: "The metadata standard is well documented under a persistent identifier"}
	}
}

func i2_01d(ctx context.Context, ec *Context, svc Services) Result {
	r := i2_01m(ctx, ec, svc)
	r.Code = "RDA-I2-01D"
	return r
}

// i3_01m counts coarse references to other objects and people: relation
// terms point at related objects, contributor terms at people.
func i3_01m(_ context.Context, ec *Context, _ Services) Result {
	contributors := len(ec.Terms.ByElement("contributor"))
	relations := len(ec.Terms.ByElement("relation"))
	if contributors > 0 || relations > 0 {
		return Result{Code: "RDA-I3-01M", Score: 100,
			Message: fmt.Sprintf("Your (meta)data includes %d references to other digital objects and %d references to contributors", relations, contributors)}
	}
	return Result{Code: "RDA-I3-01M", Score: 0,
		Message: "Your (meta)data does not include references to other digital objects or contributors"}
}

func i3_01d(ctx context.Context, ec *Context, svc Services) Result {
	r := i3_01m(ctx, ec, svc)
	r.Code = "RDA-I3-01D"
	return r
}

// i3_02m counts qualified references: term values that carry a detected
// identifier scheme and do not normalize to the subject identifier itself.
// A value that canonicalizes to the subject's own identifier in a shared
// scheme is the record pointing at itself and never counts.
func i3_02m(_ context.Context, ec *Context, _ Services) Result {
	references := 0
	var refTypes []string
	for _, t := range ec.Terms.All() {
		if !t.HasValue() {
			continue
		}
		schemes := identifier.DetectSchemes(*t.Value)
		if len(schemes) == 0 {
			continue
		}
		primary := schemes[0]
		if identifier.Normalize(*t.Value, primary) == ec.Subject.NormalizedIn(primary) {
			continue
		}
		references++
		refTypes = append(refTypes, string(primary))
	}
	if references > 0 {
		return Result{Code: "RDA-I3-02M", Score: 100,
			Message: fmt.Sprintf("Your (meta)data includes %d qualified references to other digital objects. Types: %s", references, strings.Join(refTypes, ", "))}
	}
	return Result{Code: "RDA-I3-02M", Score: 0,
		Message: "Your (meta)data does not include qualified references to other digital objects"}
}

func i3_02d(ctx context.Context, ec *Context, svc Services) Result {
	r := i3_02m(ctx, ec, svc)
	r.Code = "RDA-I3-02D"
	return r
}

// i3_03m checks for qualified relationships: relation terms with values.
func i3_03m(_ context.Context, ec *Context, _ Services) Result {
	values := ec.Terms.Values("relation")
	if len(values) > 0 {
		return Result{Code: "RDA-I3-03M", Score: 100,
			Message: "Your (meta)data is connected with the following relationships: " + strings.Join(values, " ")}
	}
	return Result{Code: "RDA-I3-03M", Score: 0,
		Message: "Your (meta)data does not include any relationship"}
}

func i3_04m(ctx context.Context, ec *Context, svc Services) Result {
	r := i3_03m(ctx, ec, svc)
	r.Code = "RDA-I3-04M"
	return r
}
