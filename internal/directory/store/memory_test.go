package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerhub/internal/directory/models"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

func TestUpsertStudentMerges(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.UpsertStudent(ctx, models.StudentProfile{
		ID:             "s1",
		Name:           "Ada",
		Email:          "ada@example.com",
		Phone:          "123",
		Qualifications: []string{"Go"},
	}, t0)
	require.NoError(t, err)

	t.Run("partial update preserves unmentioned fields", func(t *testing.T) {
		got, err := s.UpsertStudent(ctx, models.StudentProfile{
			ID:    "s1",
			Email: "ada@new.example.com",
		}, t0.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, "ada@new.example.com", got.Email)
		assert.Equal(t, "123", got.Phone)
		assert.Equal(t, []string{"Go"}, got.Qualifications)
		assert.Equal(t, t0.Add(time.Hour), got.UpdatedAt)
	})

	t.Run("nil qualifications keep the stored list", func(t *testing.T) {
		got, err := s.UpsertStudent(ctx, models.StudentProfile{ID: "s1", Name: "Ada L."}, t0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, got.Qualifications)
	})

	t.Run("non-nil qualifications replace the stored list", func(t *testing.T) {
		got, err := s.UpsertStudent(ctx, models.StudentProfile{
			ID:             "s1",
			Qualifications: []string{"Go", "SQL"},
		}, t0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL"}, got.Qualifications)
	})
}

func TestUpsertCompanyMarksComplete(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	now := time.Now()

	got, err := s.UpsertCompany(ctx, models.CompanyProfile{
		ID:              "acme",
		Name:            "Acme",
		ProfileComplete: true,
	}, now)
	require.NoError(t, err)
	assert.True(t, got.ProfileComplete)
	assert.Equal(t, models.RegistrationPending, got.Status)

	// A later partial write does not reset the flag.
	got, err = s.UpsertCompany(ctx, models.CompanyProfile{ID: "acme", Location: "NYC"}, now)
	require.NoError(t, err)
	assert.True(t, got.ProfileComplete)
	assert.Equal(t, "Acme", got.Name)
}

func TestApproveInstitution(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	now := time.Now()

	_, err := s.UpsertInstitution(ctx, models.InstitutionProfile{
		ID: "inst1", Name: "State U", Email: "admin@stateu.example",
	}, now)
	require.NoError(t, err)

	require.NoError(t, s.ApproveInstitution(ctx, "inst1", id.AccountID("acct-1"), now))

	got, err := s.FindInstitution(ctx, "inst1")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, got.Status)
	assert.Equal(t, id.AccountID("acct-1"), got.AccountID)
	require.NotNil(t, got.ApprovedAt)

	t.Run("absent record returns ErrNotFound", func(t *testing.T) {
		err := s.ApproveInstitution(ctx, "ghost", "acct-2", now)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestFacultyLifecycle(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	now := time.Now()

	faculty := &models.Faculty{
		ID: id.NewFacultyID(), InstitutionID: "inst1", Name: "Engineering",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.CreateFaculty(ctx, faculty))

	got, err := s.UpdateFaculty(ctx, faculty.ID, "Engineering & CS", "", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Engineering & CS", got.Name)

	_, err = s.UpdateFaculty(ctx, "missing", "X", "", now)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, s.DeleteFaculty(ctx, faculty.ID))
	_, err = s.UpdateFaculty(ctx, faculty.ID, "X", "", now)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestDocuments(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	now := time.Now()

	doc := &models.Document{
		ID: id.NewDocumentID(), StudentID: "s1",
		FileURL: "https://files.example/t.pdf", FileType: "transcript",
		UploadedAt: now,
	}
	require.NoError(t, s.CreateDocument(ctx, doc))

	docs, err := s.ListDocuments(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)

	docs, err = s.ListDocuments(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
