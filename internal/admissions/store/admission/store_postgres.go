package admission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	id "careerhub/pkg/domain"

	"github.com/lib/pq"
)

// Postgres persists admissions in the admissions table (db/schema.sql).
//
// Exclusivity is a unique index on student_id, so the guard and the write
// are one atomic statement: the losing concurrent publisher gets a unique
// violation, never a second admission.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfNoneForStudent(ctx context.Context, adm *models.Admission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admissions
		   (id, student_id, institution_id, course_name, admission_status, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		adm.ID.String(), adm.StudentID.String(), adm.InstitutionID.String(),
		adm.CourseName, adm.AdmissionStatus, adm.PublishedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return store.ErrAlreadyAdmitted
		}
		return fmt.Errorf("insert admission: %w", err)
	}
	return nil
}

func (s *Postgres) ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Admission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, institution_id, course_name, admission_status, published_at
		   FROM admissions WHERE student_id = $1`,
		studentID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	defer rows.Close()

	var out []*models.Admission
	for rows.Next() {
		var (
			adm     models.Admission
			admID   string
			student string
			inst    string
		)
		if err := rows.Scan(&admID, &student, &inst, &adm.CourseName, &adm.AdmissionStatus, &adm.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan admission: %w", err)
		}
		adm.ID = id.AdmissionID(admID)
		adm.StudentID = id.StudentID(student)
		adm.InstitutionID = id.InstitutionID(inst)
		out = append(out, &adm)
	}
	return out, rows.Err()
}
