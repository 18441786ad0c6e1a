package applicant

import (
	"context"
	"database/sql"
	"fmt"

	"careerhub/internal/recruiting/models"
	id "careerhub/pkg/domain"
)

// Postgres persists applicant records in the applicants table
// (db/schema.sql). One row per submission; company and student listings are
// indexed queries over the same table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const applicantColumns = `id, student_id, company_id, job_id, academic_score,
	certificate_count, work_experience_years, relevance_score, final_score, status, created_at`

func (s *Postgres) Create(ctx context.Context, applicant *models.Applicant) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applicants
		   (id, student_id, company_id, job_id, academic_score, certificate_count,
		    work_experience_years, relevance_score, final_score, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		applicant.ID.String(), applicant.StudentID.String(), applicant.CompanyID.String(),
		applicant.JobID.String(), applicant.AcademicScore, applicant.CertificateCount,
		applicant.WorkExperienceYears, applicant.RelevanceScore, applicant.FinalScore,
		string(applicant.Status), applicant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	return nil
}

func (s *Postgres) ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*models.Applicant, error) {
	return s.list(ctx,
		`SELECT `+applicantColumns+`
		   FROM applicants WHERE company_id = $1 ORDER BY final_score DESC, created_at`,
		companyID.String())
}

func (s *Postgres) ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Applicant, error) {
	return s.list(ctx,
		`SELECT `+applicantColumns+`
		   FROM applicants WHERE student_id = $1 ORDER BY created_at`,
		studentID.String())
}

func (s *Postgres) list(ctx context.Context, query string, arg any) ([]*models.Applicant, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	var out []*models.Applicant
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplicant(rows *sql.Rows) (*models.Applicant, error) {
	var (
		a           models.Applicant
		applicantID string
		student     string
		company     string
		jobID       string
		status      string
	)
	err := rows.Scan(&applicantID, &student, &company, &jobID, &a.AcademicScore,
		&a.CertificateCount, &a.WorkExperienceYears, &a.RelevanceScore, &a.FinalScore,
		&status, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan applicant: %w", err)
	}
	a.ID = id.ApplicantID(applicantID)
	a.StudentID = id.StudentID(student)
	a.CompanyID = id.CompanyID(company)
	a.JobID = id.JobID(jobID)
	a.Status = id.QualificationStatus(status)
	return &a, nil
}
