package capability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthassist/backend/internal/model"
)

func TestLocators(t *testing.T) {
	ctx := context.Background()

	pos, err := LocatorFor(&model.Position{Latitude: 40.7, Longitude: -74}, "").CurrentPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.7, pos.Latitude)

	_, err = LocatorFor(nil, "permission denied").CurrentPosition(ctx)
	assert.ErrorIs(t, err, ErrLocationUnavailable)
	assert.Contains(t, err.Error(), "permission denied")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = FixedLocator{}.CurrentPosition(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeTranscriber struct {
	handler  TranscriptHandler
	started  int
	stopped  int
	startErr error
}

func (f *fakeTranscriber) Start(_ context.Context, h TranscriptHandler) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started++
	f.handler = h
	return nil
}

func (f *fakeTranscriber) Stop() error {
	f.stopped++
	return nil
}

func TestDictation(t *testing.T) {
	ctx := context.Background()

	t.Run("Transcript replaces input while listening", func(t *testing.T) {
		fake := &fakeTranscriber{}
		d := NewDictation(fake)

		require.NoError(t, d.Toggle(ctx))
		assert.True(t, d.Listening())

		fake.handler.OnResult([]string{"I have "})
		fake.handler.OnResult([]string{"I have ", "a sore throat "})
		assert.Equal(t, "I have a sore throat ", d.Input())

		require.NoError(t, d.Toggle(ctx))
		assert.False(t, d.Listening())
		assert.Equal(t, 1, fake.stopped)

		text, ok := d.Take()
		assert.True(t, ok)
		assert.Equal(t, "I have a sore throat", text)
		assert.Empty(t, d.Input())
	})

	t.Run("Session end and error stop listening", func(t *testing.T) {
		fake := &fakeTranscriber{}
		d := NewDictation(fake)

		require.NoError(t, d.Toggle(ctx))
		fake.handler.OnEnd()
		assert.False(t, d.Listening())

		require.NoError(t, d.Toggle(ctx))
		fake.handler.OnError(errors.New("no-speech"))
		assert.False(t, d.Listening())
		assert.Equal(t, 2, fake.started)
	})

	t.Run("Unsupported", func(t *testing.T) {
		assert.ErrorIs(t, NewDictation(nil).Toggle(ctx), ErrSpeechUnsupported)
	})

	t.Run("Start failure", func(t *testing.T) {
		d := NewDictation(&fakeTranscriber{startErr: errors.New("not-allowed")})
		assert.Error(t, d.Toggle(ctx))
		assert.False(t, d.Listening())
	})

	t.Run("Blank input is not taken", func(t *testing.T) {
		d := NewDictation(nil)
		d.SetInput("   ")
		_, ok := d.Take()
		assert.False(t, ok)
		assert.Equal(t, "   ", d.Input())
	})
}
