package vocab

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"fairmeter/internal/terms"
)

type CheckSuite struct {
	suite.Suite
}

func TestCheckSuite(t *testing.T) {
	suite.Run(t, new(CheckSuite))
}

func buildSet(elements ...string) *terms.Set {
	set := terms.NewSet()
	for _, e := range elements {
		set.Append(terms.Term{Element: e, Value: terms.String("v-" + e)})
	}
	return set.Freeze()
}

func (s *CheckSuite) TestFullCoverageIffAllRequirementsMatch() {
	set := buildSet("contributor", "date", "description", "identifier",
		"publisher", "rights", "title", "subject")

	r := Check(set, DublinCore())
	s.Equal(100, r.Coverage())
	s.Empty(r.Missing())

	partial := buildSet("title", "subject")
	r = Check(partial, DublinCore())
	s.Less(r.Coverage(), 100)
	s.Len(r.Missing(), 6)
}

func (s *CheckSuite) TestCoverageRoundsAtEmission() {
	// 1 of 3 requirements: 100/3 rounds to 33, 2 of 3 rounds to 67.
	v := Vocabulary{{Element: "a"}, {Element: "b"}, {Element: "c"}}

	s.Equal(33, Check(buildSet("a"), v).Coverage())
	s.Equal(67, Check(buildSet("a", "b"), v).Coverage())
}

func (s *CheckSuite) TestMatchingIsExactAndCaseSensitive() {
	set := buildSet("Title")
	r := Check(set, Vocabulary{{Element: "title"}})
	s.Equal(0, r.Coverage())
}

func (s *CheckSuite) TestQualifierSemantics() {
	q := "issued"
	set := terms.NewSet()
	set.Append(terms.Term{Element: "date", Qualifier: &q, Value: terms.String("2020")})
	set.Append(terms.Term{Element: "date", Value: terms.String("2021")})
	set.Freeze()

	s.Run("nil requirement qualifier matches any", func() {
		r := Check(set, Vocabulary{{Element: "date"}})
		s.Equal(100, r.Coverage())
		s.Equal([]string{"2020", "2021"}, r.Matches[0].Values)
	})

	s.Run("non-nil qualifier requires equality", func() {
		r := Check(set, Vocabulary{{Element: "date", Qualifier: &q}})
		s.True(r.Matches[0].Found)
		s.Equal([]string{"2020"}, r.Matches[0].Values)

		other := "available"
		r = Check(set, Vocabulary{{Element: "date", Qualifier: &other}})
		s.False(r.Matches[0].Found)
	})
}

func (s *CheckSuite) TestPresenceWithoutValueCounts() {
	set := terms.NewSet()
	set.Append(terms.Term{Element: "rights"})
	set.Freeze()

	r := Check(set, Vocabulary{{Element: "rights"}})
	s.True(r.Matches[0].Found)
	s.Empty(r.Matches[0].Values)
	s.Equal(100, r.Coverage())
}

func (s *CheckSuite) TestEmptySetScoresZeroWithoutFault() {
	r := Check(terms.NewSet().Freeze(), DublinCore())
	s.Equal(0, r.Coverage())
	s.Len(r.Missing(), 8)
}

func (s *CheckSuite) TestIdentifierTermsCoverIdentifierElement() {
	report := Check(buildSet("identifier"), IdentifierTerms())
	s.Equal(100, report.Coverage())

	report = Check(buildSet("title"), IdentifierTerms())
	s.Equal(0, report.Coverage())
}
