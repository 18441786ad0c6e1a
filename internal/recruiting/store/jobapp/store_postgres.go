package jobapp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerhub/internal/recruiting/models"
	"careerhub/internal/recruiting/store"
	id "careerhub/pkg/domain"

	"github.com/lib/pq"
)

// Postgres persists plain job applications in the job_applications table
// (db/schema.sql). The unique index on (student_id, job_id) is the dedup
// guard: a losing concurrent insert surfaces as a unique violation.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfFirst(ctx context.Context, app *models.JobApplication) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_applications (id, student_id, job_id, status, applied_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.StudentID.String(), app.JobID.String(), app.Status, app.AppliedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return store.ErrAlreadyApplied
		}
		return fmt.Errorf("insert job application: %w", err)
	}
	return nil
}

func (s *Postgres) ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.JobApplication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, job_id, status, applied_at
		   FROM job_applications WHERE student_id = $1 ORDER BY applied_at`,
		studentID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	defer rows.Close()

	var out []*models.JobApplication
	for rows.Next() {
		var (
			app     models.JobApplication
			student string
			jobID   string
		)
		if err := rows.Scan(&app.ID, &student, &jobID, &app.Status, &app.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan job application: %w", err)
		}
		app.StudentID = id.StudentID(student)
		app.JobID = id.JobID(jobID)
		out = append(out, &app)
	}
	return out, rows.Err()
}
