package store

import (
	"encoding/json"
	"time"
)

// Submission is an organization's stored intake and, once computed, its
// report. Both payloads are kept as raw JSON.
type Submission struct {
	ID           string
	Organization string
	Intake       json.RawMessage
	Report       json.RawMessage // nil until SaveReport
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasReport reports whether a report has been saved.
func (s *Submission) HasReport() bool {
	return len(s.Report) > 0
}
