package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/tmaxmax/go-sse"

	app_errors "healthassist/backend/internal/errors"
	"healthassist/backend/internal/model"
)

// This file contains shared DTOs (Data Transfer Objects) for API requests and
// responses and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that don't
// return a resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// MessageResponse carries a confirmation text meant for display.
type MessageResponse struct {
	Message string `json:"message"`
}

// SessionResponse is returned by login and registration. The id must be sent
// back in the X-Session-ID header.
type SessionResponse struct {
	SessionID string        `json:"session_id" example:"3f1c2d4e-5a6b-7c8d-9e0f-1a2b3c4d5e6f"`
	Profile   model.Profile `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"john.doe@example.com"`
	Password string `json:"password" validate:"required" example:"secret"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100" example:"Jane Roe"`
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"secret"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"old-secret"`
	NewPassword     string `json:"new_password" example:"new-secret"`
	ConfirmPassword string `json:"confirm_password" example:"new-secret"`
}

// SendMessageRequest is the body of a chat message. Blank text is rejected
// before anything is sent to the model.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000" example:"I have had a headache for two days."`
}

type SymptomRequest struct {
	Symptoms string `json:"symptoms" validate:"required,max=4000" example:"sore throat and mild fever"`
}

// AppointmentRequest carries the search prompt and the position obtained by the
// browser. LocationError explains why Location is absent.
type AppointmentRequest struct {
	Prompt        string          `json:"prompt" validate:"required,max=1000" example:"dermatologist accepting new patients"`
	Location      *model.Position `json:"location,omitempty"`
	LocationError string          `json:"location_error,omitempty" example:"User denied Geolocation"`
}

// respondWithError is the centralized error handling function for the API layer.
// It maps business-layer errors to HTTP status codes. A fixed user-facing
// message carried by err takes precedence over the generic one.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages from the service layer are already user-friendly.
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrUnauthenticated):
		statusCode = http.StatusUnauthorized
		message = "Please sign in to continue."
	case errors.Is(err, app_errors.ErrNotConfigured):
		statusCode = http.StatusServiceUnavailable
		message = "The assistant is not available."
	case errors.Is(err, app_errors.ErrUpstream):
		statusCode = http.StatusBadGateway
		message = "The assistant could not answer. Please try again."
	default:
		// Anything unhandled is an internal error; details stay in the log.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}
	if userMsg, ok := app_errors.UserMessage(err); ok {
		message = userMsg
	}

	zerolog.Ctx(r.Context()).Warn().
		Int("status_code", statusCode).
		Str("client_message", message).
		Err(err).
		Msg("responding with error")

	respondWithJSON(w, r, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal JSON response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write JSON response")
	}
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return app_errors.NewUserFacing(app_errors.ErrValidation, "Invalid request payload.", err)
	}
	return validateRequest(dst)
}

// writeStreamEvent sends one conversation event as an SSE message. Error
// events use the "error" event type so EventSource clients can listen for them
// separately. A write failure means the client has disconnected.
func writeStreamEvent(sess *sse.Session, ev model.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		// The stream itself is still usable; only this event is lost.
		return nil
	}

	msg := &sse.Message{}
	if ev.Kind == model.EventError {
		msg.Type = sse.Type("error")
	}
	msg.AppendData(string(data))

	if err := sess.Send(msg); err != nil {
		return err
	}
	return sess.Flush()
}
