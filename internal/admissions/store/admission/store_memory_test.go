package admission

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerhub/internal/admissions/models"
	"careerhub/internal/admissions/store"
	id "careerhub/pkg/domain"
)

func newAdmission(t *testing.T, student, inst string) *models.Admission {
	t.Helper()
	adm, err := models.NewAdmission(id.StudentID(student), id.InstitutionID(inst), "CS", "admitted", time.Now())
	require.NoError(t, err)
	return adm
}

func TestCreateIfNoneForStudent(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	require.NoError(t, s.CreateIfNoneForStudent(ctx, newAdmission(t, "s1", "i1")))

	t.Run("second admission is rejected regardless of institution", func(t *testing.T) {
		err := s.CreateIfNoneForStudent(ctx, newAdmission(t, "s1", "i2"))
		assert.ErrorIs(t, err, store.ErrAlreadyAdmitted)
	})

	t.Run("other students are unaffected", func(t *testing.T) {
		assert.NoError(t, s.CreateIfNoneForStudent(ctx, newAdmission(t, "s2", "i1")))
	})

	t.Run("list returns the single admission", func(t *testing.T) {
		got, err := s.ListByStudent(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, id.InstitutionID("i1"), got[0].InstitutionID)
	})
}

func TestCreateIfNoneForStudent_Concurrent(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	const publishers = 32
	var wg sync.WaitGroup
	wg.Add(publishers)

	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < publishers; i++ {
		go func() {
			defer wg.Done()
			if err := s.CreateIfNoneForStudent(ctx, newAdmission(t, "racer", "i1")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exclusivity guard must admit exactly one writer")
}
