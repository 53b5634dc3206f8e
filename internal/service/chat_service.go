package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"healthassist/backend/internal/config"
	"healthassist/backend/internal/conversation"
	app_errors "healthassist/backend/internal/errors"
	"healthassist/backend/internal/llm"
	"healthassist/backend/internal/metrics"
	"healthassist/backend/internal/model"
	"healthassist/backend/internal/render"
	"healthassist/backend/internal/repository"
	"healthassist/backend/internal/stream"
)

const (
	// GreetingID is the fixed id of the first assistant message of every chat.
	GreetingID   = "initial-message"
	GreetingText = "Hello! I'm Ethical Elites AI, your personal health assistant. How can I help you today?\n\n**Disclaimer:** I am an AI assistant and not a medical professional. Please consult with a healthcare provider for any medical advice."
)

// ChatTurn identifies one user message and the reply streamed for it.
type ChatTurn struct {
	SessionID     string
	UserMessageID string
	ReplyID       string
	Text          string
	History       []model.Turn
}

type ChatService struct {
	repo     repository.Repository
	llm      llm.Provider
	renderer *render.Renderer
	logger   zerolog.Logger
	newID    func() string
}

// NewChatService wires a ChatService. provider is nil when no API key is
// configured; every AI-backed call then fails with ErrNotConfigured.
func NewChatService(repo repository.Repository, provider llm.Provider, renderer *render.Renderer, logger zerolog.Logger) *ChatService {
	return &ChatService{
		repo:     repo,
		llm:      provider,
		renderer: renderer,
		logger:   logger.With().Str("component", "chat").Logger(),
		newID:    uuid.NewString,
	}
}

func notConfigured() error {
	return app_errors.NewUserFacing(app_errors.ErrNotConfigured, config.MissingAPIKeyBanner, nil)
}

// sessionErr translates repository errors into domain errors.
func sessionErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: session", app_errors.ErrNotFound)
	}
	return err
}

func snapshot(sessionID string, s *repository.Session) *model.Conversation {
	_, streaming := s.Chat.InFlight()
	return &model.Conversation{
		SessionID: sessionID,
		Messages:  s.Chat.Messages(),
		Streaming: streaming,
		StartedAt: s.ChatStartedAt,
	}
}

// Start opens a fresh chat for the session, replacing any previous one.
func (s *ChatService) Start(ctx context.Context, sessionID string) (*model.Conversation, error) {
	if s.llm == nil {
		return nil, notConfigured()
	}

	var conv *model.Conversation
	err := s.repo.UpdateSession(ctx, sessionID, func(sess *repository.Session) error {
		if sess.Chat != nil {
			if _, streaming := sess.Chat.InFlight(); streaming {
				return app_errors.NewUserFacing(app_errors.ErrConflict, "A reply is still being written. Please wait.", nil)
			}
		}
		sess.Chat = conversation.New(model.Message{ID: GreetingID, Sender: model.SenderAssistant, Text: GreetingText})
		sess.ChatStartedAt = time.Now().UTC()
		conv = snapshot(sessionID, sess)
		return nil
	})
	if err != nil {
		return nil, sessionErr(err)
	}
	s.logger.Info().Str("session_id", sessionID).Msg("chat started")
	return conv, nil
}

// Conversation returns the session's chat as displayed.
func (s *ChatService) Conversation(ctx context.Context, sessionID string) (*model.Conversation, error) {
	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, sessionErr(err)
	}
	if sess.Chat == nil {
		return nil, app_errors.NewUserFacing(app_errors.ErrNotFound, "Chat is not initialized.", nil)
	}
	return snapshot(sessionID, sess), nil
}

// Begin validates text, appends it as a user message and reserves the id of
// the assistant reply. Nothing reaches the model until Stream is called.
func (s *ChatService) Begin(ctx context.Context, sessionID, text string) (*ChatTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", app_errors.ErrValidation)
	}
	if s.llm == nil {
		return nil, notConfigured()
	}

	turn := &ChatTurn{
		SessionID:     sessionID,
		UserMessageID: s.newID(),
		ReplyID:       s.newID(),
		Text:          text,
	}
	err := s.repo.UpdateSession(ctx, sessionID, func(sess *repository.Session) error {
		if sess.Chat == nil {
			return app_errors.NewUserFacing(app_errors.ErrNotFound, "Chat is not initialized.", nil)
		}
		turn.History = sess.Chat.History()
		err := sess.Chat.Begin(model.Message{ID: turn.UserMessageID, Sender: model.SenderUser, Text: text}, turn.ReplyID)
		if errors.Is(err, conversation.ErrInFlight) {
			return app_errors.NewUserFacing(app_errors.ErrConflict, "A reply is still being written. Please wait.", err)
		}
		return err
	})
	if err != nil {
		return nil, sessionErr(err)
	}
	return turn, nil
}

// Stream sends the turn to the model and forwards the resulting conversation
// events to events, which it closes when the reply is over. Events are applied
// to the stored conversation before they are forwarded. A cancelled ctx ends
// the reply as a failure; the stored conversation still records it.
func (s *ChatService) Stream(ctx context.Context, turn *ChatTurn, events chan<- model.Event) {
	defer close(events)

	send := func(ev model.Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	assembler := stream.NewAssembler(turn.ReplyID, func(ev model.Event) {
		if ev.Kind == model.EventInsert || ev.Kind == model.EventReplace {
			metrics.ChatFragments.Inc()
		}
		s.apply(turn, ev)
		send(ev)
	})

	fragments := make(chan llm.StreamResponse)
	errc := make(chan error, 1)
	req := &llm.ChatRequest{
		SystemInstruction: llm.ChatInstruction,
		History:           turn.History,
		Message:           turn.Text,
	}
	go func() { errc <- s.llm.ChatStream(ctx, req, fragments) }()

	startedAt := time.Now()
	streamErr := stream.Drain(assembler, fragments, errc)
	s.finish(turn, streamErr == nil)

	log := s.logger.With().
		Str("session_id", turn.SessionID).
		Str("message_id", turn.ReplyID).
		Dur("elapsed", time.Since(startedAt)).
		Int("length", len(assembler.Text())).
		Logger()

	if streamErr != nil {
		// Failures before the first fragment replaced the reply with the error text.
		outcome := "failed"
		if assembler.Text() == "" {
			outcome = "failed_before_first_fragment"
		}
		metrics.ChatStreams.WithLabelValues(outcome).Inc()
		log.Warn().Err(streamErr).Msg("chat reply failed")
		return
	}

	metrics.ChatStreams.WithLabelValues("completed").Inc()
	log.Info().Msg("chat reply completed")

	done := model.Event{Kind: model.EventDone, MessageID: turn.ReplyID, Text: assembler.Text()}
	if assembler.Started() {
		html, err := s.renderer.HTML(assembler.Text())
		if err != nil {
			log.Warn().Err(err).Msg("could not render reply")
		} else {
			done.HTML = html
		}
	}
	send(done)
}

// apply writes ev to the stored conversation. The session may have been
// deleted by a logout mid-stream, which only gets logged.
func (s *ChatService) apply(turn *ChatTurn, ev model.Event) {
	err := s.repo.UpdateSession(context.Background(), turn.SessionID, func(sess *repository.Session) error {
		if sess.Chat == nil {
			return conversation.ErrNoReply
		}
		return sess.Chat.Apply(ev)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", turn.SessionID).Str("event", string(ev.Kind)).Msg("could not apply chat event")
	}
}

func (s *ChatService) finish(turn *ChatTurn, ok bool) {
	err := s.repo.UpdateSession(context.Background(), turn.SessionID, func(sess *repository.Session) error {
		if sess.Chat != nil {
			sess.Chat.Finish(ok)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", turn.SessionID).Msg("could not finish chat reply")
	}
}
