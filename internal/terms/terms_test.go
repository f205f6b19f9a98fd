package terms

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SetSuite struct {
	suite.Suite
}

func TestSetSuite(t *testing.T) {
	suite.Run(t, new(SetSuite))
}

const dcNS = "http://purl.org/dc/elements/1.1/"

func (s *SetSuite) TestOrderAndDuplicates() {
	set := NewSet()
	set.Append(Term{Schema: dcNS, Element: "title", Value: String("First")})
	set.Append(Term{Schema: dcNS, Element: "subject", Value: String("ocean")})
	set.Append(Term{Schema: dcNS, Element: "subject", Value: String("climate")})
	set.Freeze()

	s.Equal(3, set.Len())
	s.Equal("title", set.At(0).Element)

	subjects := set.ByElement("subject")
	s.Require().Len(subjects, 2, "duplicate elements must be preserved")
	s.Equal("ocean", *subjects[0].Value)
	s.Equal("climate", *subjects[1].Value)
}

func (s *SetSuite) TestFreezeStopsAppends() {
	set := NewSet()
	set.Append(Term{Element: "title"})
	set.Freeze()
	set.Append(Term{Element: "subject"})

	s.Equal(1, set.Len())
	s.Empty(set.ByElement("subject"))
}

func (s *SetSuite) TestValuesSkipEmpty() {
	set := NewSet()
	set.Append(Term{Element: "identifier", Value: String("10.1234/x")})
	set.Append(Term{Element: "identifier"}) // presence without value
	set.Freeze()

	s.Equal([]string{"10.1234/x"}, set.Values("identifier"))
	s.Len(set.ByElement("identifier"), 2)
}

func (s *SetSuite) TestSchemasDistinctFirstSeen() {
	set := NewSet()
	set.Append(Term{Schema: dcNS, Element: "title"})
	set.Append(Term{Schema: "http://www.openarchives.org/OAI/2.0/oai_dc/", Element: "dc"})
	set.Append(Term{Schema: dcNS, Element: "subject"})
	set.Freeze()

	s.Equal([]string{dcNS, "http://www.openarchives.org/OAI/2.0/oai_dc/"}, set.Schemas())
}

func (s *SetSuite) TestEmptySetIsUsable() {
	set := NewSet().Freeze()

	s.Equal(0, set.Len())
	s.Empty(set.Schemas())
	s.Empty(set.ByElement("title"))
}
