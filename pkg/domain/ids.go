// Package domain holds shared identifier types used across modules.
package domain

import "github.com/google/uuid"

// AssessmentID identifies one FAIR assessment run.
type AssessmentID uuid.UUID

// NewAssessmentID returns a fresh random assessment ID.
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New())
}

// ParseAssessmentID parses the canonical UUID string form.
func ParseAssessmentID(s string) (AssessmentID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AssessmentID{}, err
	}
	return AssessmentID(u), nil
}

func (id AssessmentID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText renders the canonical UUID string form, so the ID serializes
// as a string wherever it appears.
func (id AssessmentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the canonical UUID string form.
func (id *AssessmentID) UnmarshalText(b []byte) error {
	parsed, err := ParseAssessmentID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil reports whether the ID is the zero UUID.
func (id AssessmentID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
