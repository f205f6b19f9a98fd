package handler

import (
	"time"

	"fairmeter/internal/assessment/models"
)

// ResultResponse is one indicator outcome with its derived views.
type ResultResponse struct {
	Code    string `json:"code"`
	Score   int    `json:"score"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Color   string `json:"color"`
}

// SummaryResponse is the aggregate view of one assessment.
type SummaryResponse struct {
	Score  int            `json:"score"`
	Status string         `json:"status"`
	Color  string         `json:"color"`
	Facets map[string]int `json:"facets"`
}

// AssessmentResponse is the HTTP shape of a stored assessment.
type AssessmentResponse struct {
	ID        string           `json:"id"`
	Subject   string           `json:"subject"`
	Endpoint  string           `json:"endpoint,omitempty"`
	Summary   SummaryResponse  `json:"summary"`
	Results   []ResultResponse `json:"results"`
	CreatedAt time.Time        `json:"created_at"`
}

// BatchResponse wraps the results of a batch run.
type BatchResponse struct {
	Assessments []*AssessmentResponse `json:"assessments"`
}

// ListResponse pages stored assessments.
type ListResponse struct {
	Assessments []*AssessmentResponse `json:"assessments"`
	Limit       int                   `json:"limit"`
	Offset      int                   `json:"offset"`
}

// FromAssessment converts a domain assessment to its HTTP shape.
func FromAssessment(a *models.Assessment) *AssessmentResponse {
	results := make([]ResultResponse, 0, len(a.Results))
	for _, r := range a.Results {
		results = append(results, ResultResponse{
			Code:    r.Code,
			Score:   r.Score,
			Message: r.Message,
			Status:  string(r.Status()),
			Color:   string(r.Color()),
		})
	}
	facets := make(map[string]int, len(a.Summary.Facets))
	for f, score := range a.Summary.Facets {
		facets[string(f)] = score
	}
	return &AssessmentResponse{
		ID:       a.ID.String(),
		Subject:  a.Subject,
		Endpoint: a.Endpoint,
		Summary: SummaryResponse{
			Score:  a.Summary.Score,
			Status: string(a.Summary.Status),
			Color:  string(a.Summary.Color),
			Facets: facets,
		},
		Results:   results,
		CreatedAt: a.CreatedAt,
	}
}

// fromAssessments maps a slice, preserving order.
func fromAssessments(all []*models.Assessment) []*AssessmentResponse {
	out := make([]*AssessmentResponse, 0, len(all))
	for _, a := range all {
		out = append(out, FromAssessment(a))
	}
	return out
}
