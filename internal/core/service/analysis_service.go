package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hydrai/telemetry-system/internal/core/domain"
	"github.com/hydrai/telemetry-system/internal/core/ports"
)

// AnalysisCache abstracts the short-lived result cache (Redis). Cache errors
// are never fatal; a broken cache degrades to calling the generator.
type AnalysisCache interface {
	Get(ctx context.Context, userID string) (string, bool, error)
	Set(ctx context.Context, userID, text string) error
}

// AnalysisService turns a user's meter readings into a consumption analysis
// produced by the external text-generation collaborator.
type AnalysisService struct {
	meters ports.MeterRepository
	gen    ports.TextGenerator
	cache  AnalysisCache
	log    zerolog.Logger
}

func NewAnalysisService(meters ports.MeterRepository, gen ports.TextGenerator, cache AnalysisCache, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{meters: meters, gen: gen, cache: cache, log: log}
}

func (s *AnalysisService) Analyze(ctx context.Context, userID string) (string, error) {
	if cached, ok, err := s.cache.Get(ctx, userID); err != nil {
		s.log.Warn().Err(err).Msg("analysis cache read failed")
	} else if ok {
		s.log.Debug().Str("user_id", userID).Msg("analysis served from cache")
		return cached, nil
	}

	meters, err := s.meters.ListByOwner(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("analyze: %w", err)
	}

	text, err := s.gen.Generate(ctx, buildPrompt(meters))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}

	if err := s.cache.Set(ctx, userID, text); err != nil {
		s.log.Warn().Err(err).Msg("analysis cache write failed")
	}

	s.log.Info().Str("user_id", userID).Int("meters", len(meters)).Msg("analysis generated")
	return text, nil
}

// buildPrompt summarises the meters into the instruction sent to the
// generator. Raw readings stay out of the prompt; totals are enough.
func buildPrompt(meters []*domain.Meter) string {
	var b strings.Builder
	b.WriteString("You are a water-efficiency assistant. Analyze the following flow-meter summary and give concrete recommendations to reduce consumption.\n")
	if len(meters) == 0 {
		b.WriteString("The user has no flow meters registered yet.\n")
		return b.String()
	}
	for _, m := range meters {
		leak := "no"
		if m.HasLeak() {
			leak = "yes"
		}
		fmt.Fprintf(&b, "- %s (%s, %s): %d readings, total consumption %.2f L, leak detected: %s\n",
			m.Name, m.Type, m.Status, len(m.Measurements), m.TotalConsumption(), leak)
	}
	return b.String()
}
