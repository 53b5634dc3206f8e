package capability

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrSpeechUnsupported is returned when no speech recognizer is available.
var ErrSpeechUnsupported = errors.New("speech recognition is not supported")

// TranscriptHandler receives the callbacks of a recognition session.
// OnResult gets every segment recognized so far, interim ones included.
type TranscriptHandler struct {
	OnResult func(segments []string)
	OnEnd    func()
	OnError  func(err error)
}

// Transcriber is a continuous speech-to-text session.
type Transcriber interface {
	Start(ctx context.Context, h TranscriptHandler) error
	Stop() error
}

// Dictation mirrors a Transcriber into an editable input line.
type Dictation struct {
	t Transcriber

	mu        sync.Mutex
	listening bool
	input     string
}

// NewDictation returns a Dictation driving t. t may be nil.
func NewDictation(t Transcriber) *Dictation {
	return &Dictation{t: t}
}

// Toggle starts listening, or stops if already listening.
func (d *Dictation) Toggle(ctx context.Context) error {
	if d.t == nil {
		return ErrSpeechUnsupported
	}

	d.mu.Lock()
	listening := d.listening
	d.mu.Unlock()

	if listening {
		err := d.t.Stop()
		d.setListening(false)
		return err
	}

	err := d.t.Start(ctx, TranscriptHandler{
		OnResult: func(segments []string) {
			d.mu.Lock()
			d.input = strings.Join(segments, "")
			d.mu.Unlock()
		},
		OnEnd:   func() { d.setListening(false) },
		OnError: func(error) { d.setListening(false) },
	})
	if err != nil {
		return err
	}
	d.setListening(true)
	return nil
}

func (d *Dictation) setListening(v bool) {
	d.mu.Lock()
	d.listening = v
	d.mu.Unlock()
}

// Listening reports whether a session is active.
func (d *Dictation) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}

// Input returns the current transcript.
func (d *Dictation) Input() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.input
}

// SetInput overwrites the transcript, as typing does.
func (d *Dictation) SetInput(s string) {
	d.mu.Lock()
	d.input = s
	d.mu.Unlock()
}

// Take returns the trimmed input and clears it. It returns false and keeps
// the input when there is nothing to send.
func (d *Dictation) Take() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	text := strings.TrimSpace(d.input)
	if text == "" {
		return "", false
	}
	d.input = ""
	return text, true
}
