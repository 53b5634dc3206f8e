package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "healthassist/backend/internal/errors"
	"healthassist/backend/internal/repository"
	"healthassist/backend/internal/service"
)

func setupAuthService() (*service.AuthService, repository.Repository) {
	repo := repository.NewMemoryRepository()
	return service.NewAuthService(repo, zerolog.Nop()), repo
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		authService, repo := setupAuthService()

		id, err := authService.Login(ctx, "jane@example.com", "anything")
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		ok, err := authService.Authenticated(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)

		profile, err := authService.Profile(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, service.DefaultProfile, *profile)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Failure - Missing credentials", func(t *testing.T) {
		authService, _ := setupAuthService()

		_, err := authService.Login(ctx, " ", "secret")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	authService, _ := setupAuthService()

	id, err := authService.Register(ctx, " Jane Roe ", "jane@example.com", "secret")
	require.NoError(t, err)

	profile, err := authService.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", profile.Name)
	assert.Equal(t, "jane@example.com", profile.Email)

	_, err = authService.Register(ctx, "", "jane@example.com", "secret")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	authService, _ := setupAuthService()

	id, err := authService.Login(ctx, "jane@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, id))

	ok, err := authService.Authenticated(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, authService.Logout(ctx, id), app_errors.ErrNotFound)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	authService, _ := setupAuthService()
	id, err := authService.Login(ctx, "jane@example.com", "secret")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		change      service.PasswordChange
		wantMessage string
		wantErr     error
	}{
		{
			name:        "Success",
			change:      service.PasswordChange{CurrentPassword: "old", NewPassword: "longenough", ConfirmPassword: "longenough"},
			wantMessage: service.ProfileUpdatedText,
		},
		{
			name:        "Mismatch",
			change:      service.PasswordChange{NewPassword: "longenough", ConfirmPassword: "different1"},
			wantMessage: service.PasswordMismatchText,
			wantErr:     app_errors.ErrValidation,
		},
		{
			name:        "Too short",
			change:      service.PasswordChange{NewPassword: "short", ConfirmPassword: "short"},
			wantMessage: service.PasswordTooShortText,
			wantErr:     app_errors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := authService.UpdatePassword(ctx, id, tc.change)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				userMsg, ok := app_errors.UserMessage(err)
				assert.True(t, ok)
				assert.Equal(t, tc.wantMessage, userMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMessage, msg)
		})
	}

	t.Run("Unknown session", func(t *testing.T) {
		_, err := authService.UpdatePassword(ctx, "missing", service.PasswordChange{})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}
