package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerhub/internal/recruiting/models"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"

	"github.com/lib/pq"
)

// Postgres persists job postings in the jobs table (db/schema.sql).
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const jobColumns = `id, company_id, title, role, location, requirements, preferred_skills, deadline, created_at`

func (s *Postgres) Create(ctx context.Context, job *models.Job) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs
		   (id, company_id, title, role, location, requirements, preferred_skills, deadline, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.ID.String(), job.CompanyID.String(), job.Title, job.Role, job.Location,
		pq.Array(job.Requirements), pq.Array(job.PreferredSkills), job.Deadline, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, jobID id.JobID) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID.String())
	return scanJob(row)
}

func (s *Postgres) ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*models.Job, error) {
	return s.list(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at`,
		companyID.String())
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Job, error) {
	return s.list(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at`)
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]*models.Job, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []*models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		job      models.Job
		jobID    string
		company  string
		deadline sql.NullString
	)
	err := row.Scan(&jobID, &company, &job.Title, &job.Role, &job.Location,
		pq.Array(&job.Requirements), pq.Array(&job.PreferredSkills), &deadline, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	job.ID = id.JobID(jobID)
	job.CompanyID = id.CompanyID(company)
	job.Deadline = deadline.String
	return &job, nil
}
