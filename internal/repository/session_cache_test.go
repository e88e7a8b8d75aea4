package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(id string) *entity.Session {
	return &entity.Session{
		ID:             id,
		Domain:         "Go",
		Level:          "senior",
		Status:         entity.SessionStatusActive,
		AskedQuestions: []string{"q1"},
	}
}

func TestSessionCache_CreateGetSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionCache(time.Hour, time.Minute)

	s := newTestSession("s1")
	require.NoError(t, repo.CreateSession(ctx, s))
	assert.Error(t, repo.CreateSession(ctx, s), "duplicate id must be rejected")

	// Stored value is a copy.
	s.AskedQuestions[0] = "mutated"
	got, err := repo.GetSessionByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, got.AskedQuestions)

	got.AskedQuestions = append(got.AskedQuestions, "q2")
	got.RecordAnswer("a1", 7)
	require.NoError(t, repo.SaveSession(ctx, got))

	again, err := repo.GetSessionByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, again.AskedQuestions)
	assert.Equal(t, []float64{7}, again.Scores)
}

func TestSessionCache_Missing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionCache(time.Hour, time.Minute)

	_, err := repo.GetSessionByID(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrSessionMissing)

	_, _, err = repo.AcquireSessionByID(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrSessionMissing)

	assert.ErrorIs(t, repo.SaveSession(ctx, newTestSession("nope")), entity.ErrSessionMissing)
}

func TestSessionCache_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionCache(time.Hour, time.Minute)

	require.NoError(t, repo.CreateSession(ctx, newTestSession("s1")))
	require.NoError(t, repo.DeleteSession(ctx, "s1"))

	_, err := repo.GetSessionByID(ctx, "s1")
	assert.ErrorIs(t, err, entity.ErrSessionMissing)
	assert.NoError(t, repo.DeleteSession(ctx, "s1"))
}

func TestSessionCache_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionCache(20*time.Millisecond, time.Hour)

	require.NoError(t, repo.CreateSession(ctx, newTestSession("s1")))
	time.Sleep(50 * time.Millisecond)

	_, err := repo.GetSessionByID(ctx, "s1")
	assert.ErrorIs(t, err, entity.ErrSessionMissing)
}

func TestSessionCache_AcquireSerializes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionCache(time.Hour, time.Minute)
	require.NoError(t, repo.CreateSession(ctx, newTestSession("s1")))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			s, release, err := repo.AcquireSessionByID(ctx, "s1")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			s.RecordAnswer("a", 1)
			assert.NoError(t, repo.SaveSession(ctx, s))
		}()
	}
	wg.Wait()

	s, err := repo.GetSessionByID(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, s.Answers, workers)
}

func TestSessionCache_AcquireUnknownLeavesNoLock(t *testing.T) {
	t.Parallel()

	r := NewSessionCache(time.Hour, time.Minute)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_, release, err := r.AcquireSessionByID(ctx, fmt.Sprintf("unknown-%d", i))
		assert.ErrorIs(t, err, entity.ErrSessionMissing)
		assert.Nil(t, release)
	}

	require.NoError(t, r.CreateSession(ctx, newTestSession("known")))
	_, release, err := r.AcquireSessionByID(ctx, "known")
	require.NoError(t, err)
	release()
	require.NoError(t, r.DeleteSession(ctx, "known"))

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Empty(t, r.locks)
}
