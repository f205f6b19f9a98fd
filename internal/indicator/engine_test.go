package indicator

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"fairmeter/internal/identifier"
	"fairmeter/internal/terms"
)

// fakeChecker answers liveness from a fixed table. Unknown URLs are dead.
type fakeChecker struct {
	live map[string]bool
}

func (f fakeChecker) Alive(_ context.Context, url string) bool {
	return f.live[url]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func emptyContext() *Context {
	return NewContext(identifier.Parse("internal-42"), terms.NewSet().Freeze(), "", nil)
}

type EngineSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) TestEveryIndicatorProducesExactlyOneResult() {
	e := New(Services{Liveness: fakeChecker{}}, WithLogger(quietLogger()))
	results := e.Run(context.Background(), emptyContext())

	s.Len(results, len(Catalog()))
	seen := make(map[string]int)
	for _, r := range results {
		s.NotEmpty(r.Code)
		s.NotEmpty(r.Message, "indicator %s", r.Code)
		s.GreaterOrEqual(r.Score, 0)
		s.LessOrEqual(r.Score, 100)
		seen[r.Code]++
	}
	for code, n := range seen {
		s.Equal(1, n, "indicator %s", code)
	}
}

func (s *EngineSuite) TestEmptyTermSetScoresZeroWithoutFault() {
	e := New(Services{Liveness: fakeChecker{}}, WithLogger(quietLogger()))
	results := e.Run(context.Background(), emptyContext())

	termDependent := map[string]bool{
		"RDA-F1-01M": true, "RDA-F2-01M": true, "RDA-F3-01M": true,
		"RDA-F4-01M": true, "RDA-A1-01M": true, "RDA-I1-01M": true,
		"RDA-I3-01M": true, "RDA-I3-02M": true, "RDA-R1.1-01M": true,
	}
	for _, r := range results {
		if termDependent[r.Code] {
			s.Equal(0, r.Score, "indicator %s", r.Code)
			s.NotEmpty(r.Message, "indicator %s", r.Code)
		}
	}
}

func (s *EngineSuite) TestPanickingIndicatorIsRecovered() {
	boom := Indicator{Code: "RDA-X-TEST", Facet: FacetFindable,
		Eval: func(context.Context, *Context, Services) Result { panic("boom") }}
	e := New(Services{}, WithLogger(quietLogger()), WithCatalog([]Indicator{boom}))

	results := e.Run(context.Background(), emptyContext())
	s.Len(results, 1)
	s.Equal("RDA-X-TEST", results[0].Code)
	s.Equal(0, results[0].Score)
	s.NotEmpty(results[0].Message)
}

func (s *EngineSuite) TestScoresAreClampedToRange() {
	wild := Indicator{Code: "RDA-X-WILD", Facet: FacetFindable,
		Eval: func(context.Context, *Context, Services) Result {
			return Result{Code: "RDA-X-WILD", Score: 250, Message: "overflow"}
		}}
	e := New(Services{}, WithLogger(quietLogger()), WithCatalog([]Indicator{wild}))

	results := e.Run(context.Background(), emptyContext())
	s.Equal(100, results[0].Score)
}

func (s *EngineSuite) TestParallelRunMatchesSequential() {
	set := terms.NewSet()
	for _, e := range []string{"title", "subject", "identifier", "relation", "license"} {
		set.Append(terms.Term{Element: e, Value: terms.String("v-" + e)})
	}
	ec := NewContext(identifier.Parse("10.1234/zenodo.5678"), set.Freeze(),
		"http://repo.example.org/oai", []string{"http", "oai-pmh"})

	svc := Services{Liveness: fakeChecker{}}
	sequential := New(svc, WithLogger(quietLogger())).Run(context.Background(), ec)
	parallel := New(svc, WithLogger(quietLogger()), WithParallelism(8)).Run(context.Background(), ec)

	s.Equal(sequential, parallel)
}
