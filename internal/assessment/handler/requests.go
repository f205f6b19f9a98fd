package handler

import (
	"strings"

	"fairmeter/internal/assessment/service"
	dErrors "fairmeter/pkg/domain-errors"
)

// CreateAssessmentRequest is the body for POST /assessments.
type CreateAssessmentRequest struct {
	Identifier string `json:"identifier"`
	Endpoint   string `json:"endpoint,omitempty"`
}

// Validate checks and normalizes the request.
func (r *CreateAssessmentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Identifier = strings.TrimSpace(r.Identifier)
	if r.Identifier == "" {
		return dErrors.New(dErrors.CodeBadRequest, "identifier is required")
	}
	if len(r.Identifier) > 512 {
		return dErrors.New(dErrors.CodeBadRequest, "identifier must be at most 512 characters")
	}
	r.Endpoint = strings.TrimSpace(r.Endpoint)
	if r.Endpoint != "" && !strings.HasPrefix(r.Endpoint, "http://") && !strings.HasPrefix(r.Endpoint, "https://") {
		return dErrors.New(dErrors.CodeBadRequest, "endpoint must be an http(s) URL")
	}
	return nil
}

// ToDomain converts the request to the service form.
func (r *CreateAssessmentRequest) ToDomain() service.AssessRequest {
	return service.AssessRequest{Identifier: r.Identifier, Endpoint: r.Endpoint}
}

// BatchAssessmentRequest is the body for POST /assessments/batch.
type BatchAssessmentRequest struct {
	Subjects []CreateAssessmentRequest `json:"subjects"`
}

const maxBatchSize = 50

// Validate checks every subject in the batch.
func (r *BatchAssessmentRequest) Validate() error {
	if r == nil || len(r.Subjects) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one subject is required")
	}
	if len(r.Subjects) > maxBatchSize {
		return dErrors.Newf(dErrors.CodeBadRequest, "at most %d subjects per batch", maxBatchSize)
	}
	for i := range r.Subjects {
		if err := r.Subjects[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToDomain converts the batch to its service form.
func (r *BatchAssessmentRequest) ToDomain() []service.AssessRequest {
	out := make([]service.AssessRequest, 0, len(r.Subjects))
	for i := range r.Subjects {
		out = append(out, r.Subjects[i].ToDomain())
	}
	return out
}
