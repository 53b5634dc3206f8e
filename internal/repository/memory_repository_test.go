package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthassist/backend/internal/conversation"
	"healthassist/backend/internal/model"
	"healthassist/backend/internal/repository"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	session := &repository.Session{ID: "s1", Authenticated: true, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateSession(ctx, session))
	assert.ErrorIs(t, repo.CreateSession(ctx, session), repository.ErrExists)

	got, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Authenticated)

	err = repo.UpdateSession(ctx, "s1", func(s *repository.Session) error {
		s.Profile = model.Profile{Name: "Jane"}
		return nil
	})
	require.NoError(t, err)

	got, err = repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Profile.Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.DeleteSession(ctx, "s1"))
	_, err = repo.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteSession(ctx, "s1"), repository.ErrNotFound)
}

func TestMemoryRepository_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	err := repo.UpdateSession(ctx, "missing", func(*repository.Session) error { return nil })
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.CreateSession(ctx, &repository.Session{ID: "s1"}))
	fnErr := errors.New("rejected")
	assert.ErrorIs(t, repo.UpdateSession(ctx, "s1", func(*repository.Session) error { return fnErr }), fnErr)
}

func TestMemoryRepository_GetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.CreateSession(ctx, &repository.Session{ID: "s1", Chat: conversation.New()}))

	snapshot, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateSession(ctx, "s1", func(s *repository.Session) error {
		return s.Chat.Begin(model.Message{ID: "u1", Sender: model.SenderUser, Text: "hi"}, "a1")
	}))

	assert.Empty(t, snapshot.Chat.Messages())
	_, inFlight := snapshot.Chat.InFlight()
	assert.False(t, inFlight)
}

func TestMemoryRepository_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.CreateSession(ctx, &repository.Session{ID: "s1"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.UpdateSession(ctx, "s1", func(s *repository.Session) error {
				s.Profile.Name += "x"
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got.Profile.Name, 50)
}
