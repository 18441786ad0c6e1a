// Package store defines the storage contracts for the admissions module.
// Implementations live in the application and admission subpackages, one
// in-memory and one PostgreSQL each.
package store

import (
	"context"
	"fmt"

	"careerhub/internal/admissions/models"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

// Guard outcomes. These are infrastructure facts (the conditional write was
// blocked); services translate them into user-facing rejections.
var (
	// ErrLimitReached: the (student, institution) pair already holds the
	// maximum number of applications.
	ErrLimitReached = fmt.Errorf("application limit reached: %w", sentinel.ErrConflict)

	// ErrDuplicateCourse: an application for the same course already exists.
	ErrDuplicateCourse = fmt.Errorf("course already applied for: %w", sentinel.ErrAlreadyUsed)

	// ErrAlreadyAdmitted: the student already holds an admission somewhere.
	ErrAlreadyAdmitted = fmt.Errorf("student already admitted: %w", sentinel.ErrConflict)
)

// ApplicationStore persists course applications.
//
// CreateIfAllowed and Execute are the atomic guard primitives: the read that
// checks an invariant and the write that depends on it happen under one lock
// (mutex in memory, serialized transaction in Postgres), so concurrent
// writers cannot both pass a guard that only admits one.
type ApplicationStore interface {
	// CreateIfAllowed creates app only when the (student, institution) pair
	// holds fewer than limit applications and none for the same course.
	// The limit check runs first: when both conditions would fail,
	// ErrLimitReached is returned, not ErrDuplicateCourse.
	CreateIfAllowed(ctx context.Context, app *models.Application, limit int) error

	// FindByID returns sentinel.ErrNotFound when absent.
	FindByID(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error)

	// Execute atomically validates and mutates one application under the
	// store's lock, returning the updated record. validate rejecting aborts
	// with no write. Returns sentinel.ErrNotFound when absent.
	Execute(ctx context.Context, applicationID id.ApplicationID,
		validate func(*models.Application) error,
		mutate func(*models.Application)) (*models.Application, error)

	ListByInstitution(ctx context.Context, institutionID id.InstitutionID) ([]*models.Application, error)
	ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Application, error)
}

// AdmissionStore persists published admissions.
type AdmissionStore interface {
	// CreateIfNoneForStudent creates adm only when the student holds no
	// admission anywhere in the system; otherwise ErrAlreadyAdmitted.
	CreateIfNoneForStudent(ctx context.Context, adm *models.Admission) error

	ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Admission, error)
}
