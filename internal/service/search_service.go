package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"healthassist/backend/internal/capability"
	app_errors "healthassist/backend/internal/errors"
	"healthassist/backend/internal/grounding"
	"healthassist/backend/internal/llm"
	"healthassist/backend/internal/metrics"
	"healthassist/backend/internal/model"
	"healthassist/backend/internal/render"
)

const (
	SymptomFailureText     = "Sorry, something went wrong while checking your symptoms. Please try again."
	AppointmentFailureText = "Sorry, something went wrong while searching for appointments. Please try again."
	LocationRequiredText   = "Location is required to find nearby doctors. Please enable location services."
	NoResultsText          = "No results found."
)

// SearchService handles the single-turn generation features: the symptom
// checker and the map-grounded appointment search.
type SearchService struct {
	llm      llm.Provider
	renderer *render.Renderer
	logger   zerolog.Logger
}

// NewSearchService creates a new SearchService. provider may be nil when no
// API key is configured.
func NewSearchService(provider llm.Provider, renderer *render.Renderer, logger zerolog.Logger) *SearchService {
	return &SearchService{
		llm:      provider,
		renderer: renderer,
		logger:   logger.With().Str("component", "search").Logger(),
	}
}

// CheckSymptoms describes possible causes of the given symptoms. Blank input
// is rejected without calling the model.
func (s *SearchService) CheckSymptoms(ctx context.Context, symptoms string) (*model.SymptomResult, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, fmt.Errorf("%w: symptoms cannot be empty", app_errors.ErrValidation)
	}
	if s.llm == nil {
		return nil, notConfigured()
	}

	resp, err := s.llm.Generate(ctx, &llm.GenerateRequest{
		SystemInstruction: llm.SymptomInstruction,
		Prompt:            fmt.Sprintf("My symptoms are: %q", symptoms),
	})
	if err != nil {
		metrics.Generations.WithLabelValues("symptoms", "failed").Inc()
		s.logger.Error().Err(err).Msg("failed to check symptoms")
		return nil, app_errors.NewUserFacing(app_errors.ErrUpstream, SymptomFailureText, err)
	}
	metrics.Generations.WithLabelValues("symptoms", "completed").Inc()

	html, err := s.renderer.HTML(resp.Text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not render symptom result")
	}
	return &model.SymptomResult{Text: resp.Text, HTML: html}, nil
}

// FindAppointments searches for care providers near the user's position.
// Blank prompts are rejected before the position is even requested.
func (s *SearchService) FindAppointments(ctx context.Context, prompt string, locator capability.Locator) (*model.AppointmentResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt cannot be empty", app_errors.ErrValidation)
	}
	pos, err := locator.CurrentPosition(ctx)
	if err != nil {
		return nil, app_errors.NewUserFacing(app_errors.ErrValidation, LocationRequiredText, err)
	}
	if s.llm == nil {
		return nil, notConfigured()
	}

	resp, err := s.llm.Generate(ctx, &llm.GenerateRequest{
		Prompt:   prompt,
		Location: &pos,
		UseMaps:  true,
	})
	if err != nil {
		metrics.Generations.WithLabelValues("appointments", "failed").Inc()
		s.logger.Error().Err(err).Msg("failed to find appointments")
		return nil, app_errors.NewUserFacing(app_errors.ErrUpstream, AppointmentFailureText, err)
	}
	metrics.Generations.WithLabelValues("appointments", "completed").Inc()

	for _, c := range resp.Citations {
		kind := grounding.KindOf(c)
		if kind == grounding.KindNone {
			metrics.GroundingCitations.WithLabelValues("none").Inc()
			continue
		}
		metrics.GroundingCitations.WithLabelValues(string(kind)).Inc()
	}

	summary := resp.Text
	if strings.TrimSpace(summary) == "" {
		summary = NoResultsText
	}
	html, err := s.renderer.HTML(summary)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not render appointment summary")
	}
	return &model.AppointmentResult{
		Summary: summary,
		HTML:    html,
		Places:  grounding.Filter(resp.Citations),
	}, nil
}
