package api

import (
	"net/http"

	"healthassist/backend/internal/interfaces"
	"healthassist/backend/internal/service"
)

// AuthHandler handles the mock sign-in flow and the profile page.
type AuthHandler struct {
	service interfaces.AuthService
}

func NewAuthHandler(svc interfaces.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

func (h *AuthHandler) respondWithSession(w http.ResponseWriter, r *http.Request, code int, sessionID string) {
	profile, err := h.service.Profile(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	w.Header().Set(SessionHeader, sessionID)
	respondWithJSON(w, r, code, SessionResponse{SessionID: sessionID, Profile: *profile})
}

// HandleLogin godoc
// @Summary      Sign in
// @Description  Opens a new session. Credentials are not checked.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  SessionResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	id, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	h.respondWithSession(w, r, http.StatusOK, id)
}

// HandleRegister godoc
// @Summary      Register
// @Description  Opens a new session whose profile shows the given name and email.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Account"
// @Success      201      {object}  SessionResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	id, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	h.respondWithSession(w, r, http.StatusCreated, id)
}

// HandleLogout godoc
// @Summary      Sign out
// @Description  Ends the session and discards its chat.
// @Tags         Auth
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  StatusResponse
// @Failure      401           {object}  ErrorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), SessionID(r.Context())); err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleGetProfile godoc
// @Summary      Get profile
// @Tags         Profile
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  model.Profile
// @Failure      401           {object}  ErrorResponse
// @Router       /v1/profile [get]
func (h *AuthHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Profile(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, profile)
}

// HandleUpdatePassword godoc
// @Summary      Change password
// @Description  Validates a password change. Nothing is stored.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string                 true  "Session id"
// @Param        request       body      UpdatePasswordRequest  true  "Passwords"
// @Success      200           {object}  MessageResponse
// @Failure      400           {object}  ErrorResponse
// @Failure      401           {object}  ErrorResponse
// @Router       /v1/profile/password [put]
func (h *AuthHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	msg, err := h.service.UpdatePassword(r.Context(), SessionID(r.Context()), service.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, MessageResponse{Message: msg})
}
