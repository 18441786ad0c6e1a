// Package store defines the storage contract for the directory module. One
// store holds all directory aggregates; profile writes are merge-upserts.
package store

import (
	"context"
	"time"

	"careerhub/internal/directory/models"
	id "careerhub/pkg/domain"
)

// Store persists directory records. Find and update methods return
// sentinel.ErrNotFound for absent records; deletes are idempotent.
//
// Upserts merge: zero-valued patch fields leave the stored value untouched,
// so a partial update never erases fields it did not mention.
type Store interface {
	UpsertInstitution(ctx context.Context, patch models.InstitutionProfile, now time.Time) (*models.InstitutionProfile, error)
	FindInstitution(ctx context.Context, institutionID id.InstitutionID) (*models.InstitutionProfile, error)
	ApproveInstitution(ctx context.Context, institutionID id.InstitutionID, accountID id.AccountID, at time.Time) error
	DeleteInstitution(ctx context.Context, institutionID id.InstitutionID) error

	UpsertStudent(ctx context.Context, patch models.StudentProfile, now time.Time) (*models.StudentProfile, error)
	FindStudent(ctx context.Context, studentID id.StudentID) (*models.StudentProfile, error)
	ListStudents(ctx context.Context) ([]*models.StudentProfile, error)
	DeleteStudent(ctx context.Context, studentID id.StudentID) error

	UpsertCompany(ctx context.Context, patch models.CompanyProfile, now time.Time) (*models.CompanyProfile, error)
	FindCompany(ctx context.Context, companyID id.CompanyID) (*models.CompanyProfile, error)
	ApproveCompany(ctx context.Context, companyID id.CompanyID, accountID id.AccountID, at time.Time) error
	DeleteCompany(ctx context.Context, companyID id.CompanyID) error

	CreateFaculty(ctx context.Context, faculty *models.Faculty) error
	UpdateFaculty(ctx context.Context, facultyID id.FacultyID, name, description string, at time.Time) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, facultyID id.FacultyID) error

	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, courseID id.CourseID, name, duration, description string, at time.Time) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID id.CourseID) error

	CreateDocument(ctx context.Context, doc *models.Document) error
	ListDocuments(ctx context.Context, studentID id.StudentID) ([]*models.Document, error)
}
