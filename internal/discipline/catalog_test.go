package discipline

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CatalogSuite struct {
	suite.Suite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

const sampleCatalog = `
[[profile]]
name = "Oceanography"
provenance = ["source", "creator"]
standards = ["coverage", "format"]

[[profile]]
name = "seismology"
standards = ["format"]
`

func (s *CatalogSuite) TestParseAndLookup() {
	c, err := Parse([]byte(sampleCatalog))
	s.Require().NoError(err)
	s.False(c.Empty())
	s.Equal([]string{"oceanography", "seismology"}, c.Names())

	p, ok := c.Profile("OCEANOGRAPHY")
	s.True(ok)
	s.Equal([]string{"source", "creator"}, p.Provenance)
	s.Len(p.ProvenanceVocabulary(), 2)
	s.Len(p.StandardsVocabulary(), 2)

	_, ok = c.Profile("astronomy")
	s.False(ok)
}

func (s *CatalogSuite) TestProfileWithoutProvenanceYieldsEmptyVocabulary() {
	c, err := Parse([]byte(sampleCatalog))
	s.Require().NoError(err)

	p, ok := c.Profile("seismology")
	s.True(ok)
	s.Empty(p.ProvenanceVocabulary())
	s.Len(p.StandardsVocabulary(), 1)
}

func (s *CatalogSuite) TestNamelessProfileIsRejected() {
	_, err := Parse([]byte("[[profile]]\nstandards = [\"format\"]\n"))
	s.Error(err)
}

func (s *CatalogSuite) TestMissingFileYieldsEmptyCatalog() {
	c, err := Load("/nonexistent/catalog.toml")
	s.Require().NoError(err)
	s.True(c.Empty())

	c, err = Load("")
	s.Require().NoError(err)
	s.True(c.Empty())
}
