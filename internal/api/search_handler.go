package api

import (
	"net/http"

	"healthassist/backend/internal/capability"
	"healthassist/backend/internal/interfaces"
)

// SearchHandler handles the symptom checker and the appointment finder.
type SearchHandler struct {
	service interfaces.SearchService
}

func NewSearchHandler(svc interfaces.SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// HandleCheckSymptoms godoc
// @Summary      Check symptoms
// @Description  Describes possible causes of the given symptoms. Not medical advice.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string          true  "Session id"
// @Param        request       body      SymptomRequest  true  "Symptoms"
// @Success      200           {object}  model.SymptomResult
// @Failure      400           {object}  ErrorResponse
// @Failure      502           {object}  ErrorResponse
// @Failure      503           {object}  ErrorResponse
// @Router       /v1/symptoms [post]
func (h *SearchHandler) HandleCheckSymptoms(w http.ResponseWriter, r *http.Request) {
	var req SymptomRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	result, err := h.service.CheckSymptoms(r.Context(), req.Symptoms)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, result)
}

// HandleFindAppointments godoc
// @Summary      Find appointments
// @Description  Searches for nearby care providers using map grounding.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string              true  "Session id"
// @Param        request       body      AppointmentRequest  true  "Prompt and position"
// @Success      200           {object}  model.AppointmentResult
// @Failure      400           {object}  ErrorResponse
// @Failure      502           {object}  ErrorResponse
// @Failure      503           {object}  ErrorResponse
// @Router       /v1/appointments [post]
func (h *SearchHandler) HandleFindAppointments(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	locator := capability.LocatorFor(req.Location, req.LocationError)
	result, err := h.service.FindAppointments(r.Context(), req.Prompt, locator)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, result)
}
