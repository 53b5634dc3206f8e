package interfaces

import (
	"context"

	"healthassist/backend/internal/capability"
	"healthassist/backend/internal/model"
	"healthassist/backend/internal/service"
)

// This file defines the interfaces for our core services. The API layer
// depends on these instead of the concrete implementations so handlers can be
// tested against mocks.

// ChatService defines the contract for the streaming health chat.
type ChatService interface {
	Start(ctx context.Context, sessionID string) (*model.Conversation, error)
	Conversation(ctx context.Context, sessionID string) (*model.Conversation, error)
	Begin(ctx context.Context, sessionID, text string) (*service.ChatTurn, error)
	Stream(ctx context.Context, turn *service.ChatTurn, events chan<- model.Event)
}

// AuthService defines the contract for the mock sign-in flow and profile.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticated(ctx context.Context, sessionID string) (bool, error)
	Profile(ctx context.Context, sessionID string) (*model.Profile, error)
	UpdatePassword(ctx context.Context, sessionID string, change service.PasswordChange) (string, error)
}

// SearchService defines the contract for the symptom checker and the
// appointment finder.
type SearchService interface {
	CheckSymptoms(ctx context.Context, symptoms string) (*model.SymptomResult, error)
	FindAppointments(ctx context.Context, prompt string, locator capability.Locator) (*model.AppointmentResult, error)
}

var (
	_ ChatService   = (*service.ChatService)(nil)
	_ AuthService   = (*service.AuthService)(nil)
	_ SearchService = (*service.SearchService)(nil)
)
