package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"careerhub/internal/directory/models"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"

	"github.com/lib/pq"
)

// Postgres persists directory records (db/schema.sql). Merge-upserts are
// INSERT ... ON CONFLICT updates that coalesce empty patch fields back to
// the stored value, so the merge happens in one statement.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) UpsertInstitution(ctx context.Context, patch models.InstitutionProfile, now time.Time) (*models.InstitutionProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO institutions (id, name, email, address, phone, website, status, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   name       = COALESCE(NULLIF(EXCLUDED.name, ''), institutions.name),
		   email      = COALESCE(NULLIF(EXCLUDED.email, ''), institutions.email),
		   address    = COALESCE(NULLIF(EXCLUDED.address, ''), institutions.address),
		   phone      = COALESCE(NULLIF(EXCLUDED.phone, ''), institutions.phone),
		   website    = COALESCE(NULLIF(EXCLUDED.website, ''), institutions.website),
		   updated_at = EXCLUDED.updated_at
		 RETURNING id, name, email, address, phone, website, status, account_id, approved_at, updated_at`,
		patch.ID.String(), patch.Name, patch.Email, patch.Address, patch.Phone,
		patch.Website, models.RegistrationPending, now,
	)
	return scanInstitution(row)
}

func (s *Postgres) FindInstitution(ctx context.Context, institutionID id.InstitutionID) (*models.InstitutionProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, address, phone, website, status, account_id, approved_at, updated_at
		   FROM institutions WHERE id = $1`,
		institutionID.String(),
	)
	return scanInstitution(row)
}

func (s *Postgres) ApproveInstitution(ctx context.Context, institutionID id.InstitutionID, accountID id.AccountID, at time.Time) error {
	return s.approve(ctx, "institutions", institutionID.String(), accountID, at)
}

func (s *Postgres) DeleteInstitution(ctx context.Context, institutionID id.InstitutionID) error {
	return s.remove(ctx, "institutions", institutionID.String())
}

func (s *Postgres) UpsertStudent(ctx context.Context, patch models.StudentProfile, now time.Time) (*models.StudentProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO students (id, name, email, phone, qualifications, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		   name           = COALESCE(NULLIF(EXCLUDED.name, ''), students.name),
		   email          = COALESCE(NULLIF(EXCLUDED.email, ''), students.email),
		   phone          = COALESCE(NULLIF(EXCLUDED.phone, ''), students.phone),
		   qualifications = COALESCE(EXCLUDED.qualifications, students.qualifications),
		   updated_at     = EXCLUDED.updated_at
		 RETURNING id, name, email, phone, qualifications, updated_at`,
		patch.ID.String(), patch.Name, patch.Email, patch.Phone,
		qualificationsArg(patch.Qualifications), now,
	)
	return scanStudent(row)
}

func (s *Postgres) FindStudent(ctx context.Context, studentID id.StudentID) (*models.StudentProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, qualifications, updated_at
		   FROM students WHERE id = $1`,
		studentID.String(),
	)
	return scanStudent(row)
}

func (s *Postgres) ListStudents(ctx context.Context) ([]*models.StudentProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, qualifications, updated_at FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []*models.StudentProfile
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, student)
	}
	return out, rows.Err()
}

func (s *Postgres) DeleteStudent(ctx context.Context, studentID id.StudentID) error {
	return s.remove(ctx, "students", studentID.String())
}

func (s *Postgres) UpsertCompany(ctx context.Context, patch models.CompanyProfile, now time.Time) (*models.CompanyProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO companies (id, name, email, location, profile_complete, status, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   name             = COALESCE(NULLIF(EXCLUDED.name, ''), companies.name),
		   email            = COALESCE(NULLIF(EXCLUDED.email, ''), companies.email),
		   location         = COALESCE(NULLIF(EXCLUDED.location, ''), companies.location),
		   profile_complete = companies.profile_complete OR EXCLUDED.profile_complete,
		   updated_at       = EXCLUDED.updated_at
		 RETURNING id, name, email, location, profile_complete, status, account_id, approved_at, updated_at`,
		patch.ID.String(), patch.Name, patch.Email, patch.Location,
		patch.ProfileComplete, models.RegistrationPending, now,
	)
	return scanCompany(row)
}

func (s *Postgres) FindCompany(ctx context.Context, companyID id.CompanyID) (*models.CompanyProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, location, profile_complete, status, account_id, approved_at, updated_at
		   FROM companies WHERE id = $1`,
		companyID.String(),
	)
	return scanCompany(row)
}

func (s *Postgres) ApproveCompany(ctx context.Context, companyID id.CompanyID, accountID id.AccountID, at time.Time) error {
	return s.approve(ctx, "companies", companyID.String(), accountID, at)
}

func (s *Postgres) DeleteCompany(ctx context.Context, companyID id.CompanyID) error {
	return s.remove(ctx, "companies", companyID.String())
}

func (s *Postgres) CreateFaculty(ctx context.Context, faculty *models.Faculty) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO faculties (id, institution_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		faculty.ID.String(), faculty.InstitutionID.String(), faculty.Name,
		faculty.Description, faculty.CreatedAt, faculty.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert faculty: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateFaculty(ctx context.Context, facultyID id.FacultyID, name, description string, at time.Time) (*models.Faculty, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE faculties SET
		   name        = COALESCE(NULLIF($2, ''), name),
		   description = COALESCE(NULLIF($3, ''), description),
		   updated_at  = $4
		 WHERE id = $1
		 RETURNING id, institution_id, name, description, created_at, updated_at`,
		facultyID.String(), name, description, at,
	)
	var (
		f      models.Faculty
		fID    string
		instID string
	)
	if err := row.Scan(&fID, &instID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update faculty: %w", err)
	}
	f.ID = id.FacultyID(fID)
	f.InstitutionID = id.InstitutionID(instID)
	return &f, nil
}

func (s *Postgres) DeleteFaculty(ctx context.Context, facultyID id.FacultyID) error {
	return s.remove(ctx, "faculties", facultyID.String())
}

func (s *Postgres) CreateCourse(ctx context.Context, course *models.Course) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO courses (id, institution_id, faculty_id, name, duration, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		course.ID.String(), course.InstitutionID.String(), course.FacultyID.String(),
		course.Name, course.Duration, course.Description, course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateCourse(ctx context.Context, courseID id.CourseID, name, duration, description string, at time.Time) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE courses SET
		   name        = COALESCE(NULLIF($2, ''), name),
		   duration    = COALESCE(NULLIF($3, ''), duration),
		   description = COALESCE(NULLIF($4, ''), description),
		   updated_at  = $5
		 WHERE id = $1
		 RETURNING id, institution_id, faculty_id, name, duration, description, created_at, updated_at`,
		courseID.String(), name, duration, description, at,
	)
	var (
		c      models.Course
		cID    string
		instID string
		facID  string
	)
	if err := row.Scan(&cID, &instID, &facID, &c.Name, &c.Duration, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	c.ID = id.CourseID(cID)
	c.InstitutionID = id.InstitutionID(instID)
	c.FacultyID = id.FacultyID(facID)
	return &c, nil
}

func (s *Postgres) DeleteCourse(ctx context.Context, courseID id.CourseID) error {
	return s.remove(ctx, "courses", courseID.String())
}

func (s *Postgres) CreateDocument(ctx context.Context, doc *models.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, student_id, file_name, file_url, file_type, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID.String(), doc.StudentID.String(), doc.FileName, doc.FileURL, doc.FileType, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *Postgres) ListDocuments(ctx context.Context, studentID id.StudentID) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, file_name, file_url, file_type, uploaded_at
		   FROM documents WHERE student_id = $1 ORDER BY uploaded_at`,
		studentID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		var (
			doc     models.Document
			docID   string
			student string
		)
		if err := rows.Scan(&docID, &student, &doc.FileName, &doc.FileURL, &doc.FileType, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.ID = id.DocumentID(docID)
		doc.StudentID = id.StudentID(student)
		out = append(out, &doc)
	}
	return out, rows.Err()
}

// approve and remove cover the tables sharing the status/account_id shape.
// The table name comes from a fixed call site, never from input.
func (s *Postgres) approve(ctx context.Context, table, recordID string, accountID id.AccountID, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE `+table+` SET status = $2, account_id = $3, approved_at = $4, updated_at = $4 WHERE id = $1`,
		recordID, models.RegistrationApproved, accountID.String(), at,
	)
	if err != nil {
		return fmt.Errorf("approve %s record: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("approve %s record: %w", table, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) remove(ctx context.Context, table, recordID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, recordID); err != nil {
		return fmt.Errorf("delete %s record: %w", table, err)
	}
	return nil
}

func qualificationsArg(qualifications []string) any {
	if qualifications == nil {
		return nil
	}
	return pq.Array(qualifications)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstitution(row rowScanner) (*models.InstitutionProfile, error) {
	var (
		inst       models.InstitutionProfile
		instID     string
		address    sql.NullString
		phone      sql.NullString
		website    sql.NullString
		accountID  sql.NullString
		approvedAt sql.NullTime
	)
	err := row.Scan(&instID, &inst.Name, &inst.Email, &address, &phone, &website,
		&inst.Status, &accountID, &approvedAt, &inst.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan institution: %w", err)
	}
	inst.ID = id.InstitutionID(instID)
	inst.Address = address.String
	inst.Phone = phone.String
	inst.Website = website.String
	inst.AccountID = id.AccountID(accountID.String)
	if approvedAt.Valid {
		inst.ApprovedAt = &approvedAt.Time
	}
	return &inst, nil
}

func scanStudent(row rowScanner) (*models.StudentProfile, error) {
	var (
		student   models.StudentProfile
		studentID string
		phone     sql.NullString
	)
	err := row.Scan(&studentID, &student.Name, &student.Email, &phone,
		pq.Array(&student.Qualifications), &student.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan student: %w", err)
	}
	student.ID = id.StudentID(studentID)
	student.Phone = phone.String
	return &student, nil
}

func scanCompany(row rowScanner) (*models.CompanyProfile, error) {
	var (
		company    models.CompanyProfile
		companyID  string
		location   sql.NullString
		accountID  sql.NullString
		approvedAt sql.NullTime
	)
	err := row.Scan(&companyID, &company.Name, &company.Email, &location,
		&company.ProfileComplete, &company.Status, &accountID, &approvedAt, &company.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	company.ID = id.CompanyID(companyID)
	company.Location = location.String
	company.AccountID = id.AccountID(accountID.String)
	if approvedAt.Valid {
		company.ApprovedAt = &approvedAt.Time
	}
	return &company, nil
}
