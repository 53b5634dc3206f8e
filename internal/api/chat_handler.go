package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/tmaxmax/go-sse"

	"healthassist/backend/internal/interfaces"
	"healthassist/backend/internal/model"
)

// ChatHandler handles the health chat.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleStartChat godoc
// @Summary      Start a chat
// @Description  Opens a fresh chat for the session, seeded with the greeting and disclaimer.
// @Tags         Chat
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      201           {object}  model.Conversation
// @Failure      401           {object}  ErrorResponse
// @Failure      409           {object}  ErrorResponse
// @Failure      503           {object}  ErrorResponse
// @Router       /v1/chat [post]
func (h *ChatHandler) HandleStartChat(w http.ResponseWriter, r *http.Request) {
	conv, err := h.service.Start(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusCreated, conv)
}

// HandleGetChat godoc
// @Summary      Get the chat
// @Description  Returns the displayed messages of the session's chat.
// @Tags         Chat
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  model.Conversation
// @Failure      401           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /v1/chat [get]
func (h *ChatHandler) HandleGetChat(w http.ResponseWriter, r *http.Request) {
	conv, err := h.service.Conversation(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, conv)
}

// HandleStreamMessage godoc
// @Summary      Send a chat message
// @Description  Appends the user message and streams the assistant reply as conversation events.
// @Description  Errors found before streaming starts are returned as JSON.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        X-Session-ID  header    string              true  "Session id"
// @Param        request       body      SendMessageRequest  true  "Message"
// @Success      200           {object}  model.Event  "Stream of conversation events"
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Failure      409           {object}  ErrorResponse
// @Failure      503           {object}  ErrorResponse
// @Router       /v1/chat/messages [post]
func (h *ChatHandler) HandleStreamMessage(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req SendMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	turn, err := h.service.Begin(r.Context(), SessionID(r.Context()), req.Text)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	// events is drained on every return path so Stream can always close the
	// stored reply, including after the client has gone away.
	events := make(chan model.Event)
	go h.service.Stream(r.Context(), turn, events)
	defer func() {
		for range events {
		}
	}()

	sess, err := sse.Upgrade(w, r)
	if err != nil {
		log.Error().Err(err).Msg("could not upgrade to an event stream")
		return
	}

	for ev := range events {
		if err := writeStreamEvent(sess, ev); err != nil {
			log.Warn().Err(err).Str("message_id", turn.ReplyID).Msg("could not write to chat stream, client likely disconnected")
			return
		}
	}

	log.Info().Str("message_id", turn.ReplyID).Msg("finished streaming reply")
}
