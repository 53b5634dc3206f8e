package api

import (
	"net/http"

	"healthassist/backend/internal/config"
)

// StatusInfo tells the frontend whether the assistant can answer. Banner is
// set when it cannot and must be shown once.
type StatusInfo struct {
	Configured bool   `json:"configured"`
	Banner     string `json:"banner,omitempty"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
}

type StatusHandler struct {
	info StatusInfo
}

func NewStatusHandler(cfg *config.Config) *StatusHandler {
	info := StatusInfo{
		Configured: cfg.Validate() == nil,
		Provider:   cfg.LLMProvider,
		Model:      cfg.LLMModel,
	}
	if !info.Configured {
		info.Banner = config.MissingAPIKeyBanner
	}
	return &StatusHandler{info: info}
}

// HandleStatus godoc
// @Summary      Assistant status
// @Tags         Status
// @Produce      json
// @Success      200  {object}  StatusInfo
// @Router       /v1/status [get]
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, r, http.StatusOK, h.info)
}
