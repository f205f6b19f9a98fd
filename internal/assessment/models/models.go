// Package models holds the assessment domain model.
package models

import (
	"math"
	"time"

	"fairmeter/internal/indicator"
	"fairmeter/pkg/domain"
)

// Summary aggregates one assessment's results: the rounded mean score,
// its classification, and the mean per facet.
type Summary struct {
	Score  int                     `json:"score"`
	Status indicator.StatusValue   `json:"status"`
	Color  indicator.ColorValue    `json:"color"`
	Facets map[indicator.Facet]int `json:"facets"`
}

// Assessment is one complete evaluation of a subject identifier.
type Assessment struct {
	ID        domain.AssessmentID `json:"id"`
	Subject   string              `json:"subject"`
	Endpoint  string              `json:"endpoint,omitempty"`
	Results   []indicator.Result  `json:"results"`
	Summary   Summary             `json:"summary"`
	CreatedAt time.Time           `json:"created_at"`
}

// Summarize derives a Summary from the catalog and its results. The two
// slices are parallel; the engine guarantees one result per catalog entry.
func Summarize(catalog []indicator.Indicator, results []indicator.Result) Summary {
	facetTotals := make(map[indicator.Facet]int)
	facetCounts := make(map[indicator.Facet]int)
	total := 0
	for i, r := range results {
		total += r.Score
		if i < len(catalog) {
			facetTotals[catalog[i].Facet] += r.Score
			facetCounts[catalog[i].Facet]++
		}
	}
	s := Summary{Facets: make(map[indicator.Facet]int, len(facetTotals))}
	if len(results) > 0 {
		s.Score = int(math.Round(float64(total) / float64(len(results))))
	}
	s.Status = indicator.Status(s.Score)
	s.Color = indicator.Color(s.Score)
	for f, sum := range facetTotals {
		s.Facets[f] = int(math.Round(float64(sum) / float64(facetCounts[f])))
	}
	return s
}
