package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// CreateSubmission stores an intake payload under a new random ID.
func (s *Store) CreateSubmission(organization string, intake any) (*Submission, error) {
	intakeJSON, err := json.Marshal(intake)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intake: %w", err)
	}

	ts := now()
	sub := &Submission{
		ID:           uuid.NewString(),
		Organization: organization,
		Intake:       intakeJSON,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	query := `
		INSERT INTO submissions (id, organization, intake_json, report_json, created_at, updated_at)
		VALUES (?, ?, ?, NULL, ?, ?)
	`
	_, err = s.db.Exec(query,
		sub.ID,
		sub.Organization,
		string(sub.Intake),
		ts.Format(timeLayout),
		ts.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert submission: %w", wrapErr(err))
	}

	return sub, nil
}

// SaveReport attaches a computed report to a submission and bumps its
// updated timestamp.
func (s *Store) SaveReport(id string, report any) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `UPDATE submissions SET report_json = ?, updated_at = ? WHERE id = ?`
	result, err := s.db.Exec(query, string(reportJSON), now().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("failed to save report for %s: %w", id, wrapErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// GetSubmission retrieves a submission by ID.
func (s *Store) GetSubmission(id string) (*Submission, error) {
	query := `
		SELECT id, organization, intake_json, report_json, created_at, updated_at
		FROM submissions
		WHERE id = ?
	`

	sub, err := scanSubmission(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission %s: %w", id, wrapErr(err))
	}
	return sub, nil
}

// ListSubmissions returns all submissions, newest first.
func (s *Store) ListSubmissions() ([]*Submission, error) {
	query := `
		SELECT id, organization, intake_json, report_json, created_at, updated_at
		FROM submissions
		ORDER BY created_at DESC, id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", wrapErr(err))
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return subs, nil
}

// DeleteSubmission removes a submission.
func (s *Store) DeleteSubmission(id string) error {
	result, err := s.db.Exec(`DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission %s: %w", id, wrapErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*Submission, error) {
	var sub Submission
	var intakeJSON string
	var reportJSON sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&sub.ID, &sub.Organization, &intakeJSON, &reportJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	sub.Intake = json.RawMessage(intakeJSON)
	if reportJSON.Valid {
		sub.Report = json.RawMessage(reportJSON.String)
	}

	var err error
	if sub.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", sub.ID, err)
	}
	if sub.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at for %s: %w", sub.ID, err)
	}
	return &sub, nil
}
