package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"

	"github.com/lib/pq"
)

// Postgres persists applications in the applications table (db/schema.sql).
//
// Atomicity: CreateIfAllowed takes a transaction-scoped advisory lock on the
// (student, institution) pair before counting, so two concurrent applicants
// for the same pair serialize and the loser sees the winner's row. The
// unique index on (student_id, institution_id, course_id) backstops the
// duplicate check.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfAllowed(ctx context.Context, app *models.Application, limit int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin application tx: %w", err)
	}
	defer tx.Rollback()

	// Serialize guard evaluation per (student, institution) pair.
	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`,
		app.StudentID.String(), app.InstitutionID.String(),
	); err != nil {
		return fmt.Errorf("acquire pair lock: %w", err)
	}

	var count int
	var duplicate bool
	// bool_or over zero rows is NULL, so the empty pair must coalesce to
	// false or the first application would fail to scan.
	err = tx.QueryRowContext(ctx,
		`SELECT count(*), COALESCE(bool_or(course_id = $3), false)
		   FROM applications
		  WHERE student_id = $1 AND institution_id = $2`,
		app.StudentID.String(), app.InstitutionID.String(), app.CourseID.String(),
	).Scan(&count, &duplicate)
	if err != nil {
		return fmt.Errorf("count applications: %w", err)
	}

	if count >= limit {
		return store.ErrLimitReached
	}
	if duplicate {
		return store.ErrDuplicateCourse
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO applications
		   (id, student_id, institution_id, course_id, course_name, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID.String(), app.StudentID.String(), app.InstitutionID.String(),
		app.CourseID.String(), app.CourseName, string(app.Status), app.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return store.ErrDuplicateCourse
		}
		return fmt.Errorf("insert application: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit application: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, student_id, institution_id, course_id, course_name, status, created_at, reviewed_at
		   FROM applications WHERE id = $1`,
		applicationID.String(),
	)
	return scanApplication(row)
}

func (s *Postgres) Execute(ctx context.Context, applicationID id.ApplicationID,
	validate func(*models.Application) error,
	mutate func(*models.Application)) (*models.Application, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin review tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, student_id, institution_id, course_id, course_name, status, created_at, reviewed_at
		   FROM applications WHERE id = $1 FOR UPDATE`,
		applicationID.String(),
	)
	app, err := scanApplication(row)
	if err != nil {
		return nil, err
	}

	if err := validate(app); err != nil {
		return nil, err
	}
	mutate(app)

	var reviewedAt sql.NullTime
	if app.ReviewedAt != nil {
		reviewedAt = sql.NullTime{Time: *app.ReviewedAt, Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE applications SET status = $2, reviewed_at = $3 WHERE id = $1`,
		app.ID.String(), string(app.Status), reviewedAt,
	); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit review: %w", err)
	}
	return app, nil
}

func (s *Postgres) ListByInstitution(ctx context.Context, institutionID id.InstitutionID) ([]*models.Application, error) {
	return s.list(ctx,
		`SELECT id, student_id, institution_id, course_id, course_name, status, created_at, reviewed_at
		   FROM applications WHERE institution_id = $1 ORDER BY created_at`,
		institutionID.String(),
	)
}

func (s *Postgres) ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Application, error) {
	return s.list(ctx,
		`SELECT id, student_id, institution_id, course_id, course_name, status, created_at, reviewed_at
		   FROM applications WHERE student_id = $1 ORDER BY created_at`,
		studentID.String(),
	)
}

func (s *Postgres) list(ctx context.Context, query string, arg any) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		app        models.Application
		appID      string
		student    string
		inst       string
		course     string
		status     string
		reviewedAt sql.NullTime
	)
	err := row.Scan(&appID, &student, &inst, &course, &app.CourseName, &status, &app.CreatedAt, &reviewedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan application: %w", err)
	}
	app.ID = id.ApplicationID(appID)
	app.StudentID = id.StudentID(student)
	app.InstitutionID = id.InstitutionID(inst)
	app.CourseID = id.CourseID(course)
	app.Status = id.ReviewStatus(status)
	if reviewedAt.Valid {
		app.ReviewedAt = &reviewedAt.Time
	}
	return &app, nil
}
