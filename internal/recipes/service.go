// Package recipes turns a free-text dish description into validated recipes
// using a text-generation backend.
package recipes

import (
	"context"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/metrics"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"go.uber.org/zap"
)

// Generator produces raw text for a prompt. *llm.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	gen     Generator
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewService(gen Generator, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{gen: gen, logger: logger, metrics: m}
}

// Suggest formats the request, asks the generator and parses its answer.
// Every failure is an *Error; empty text never reaches the generator.
func (s *Service) Suggest(ctx context.Context, text string) ([]models.Recipe, error) {
	prompt, err := FormatPrompt(text)
	if err != nil {
		s.record(nil, err)
		return nil, err
	}

	start := time.Now()
	raw, err := s.gen.Generate(ctx, prompt)
	s.metrics.GenerationObserved(time.Since(start))
	if err != nil {
		err = newError(KindGenerationUnavailable, err)
		s.record(nil, err)
		return nil, err
	}

	out, err := ParseRecipes(raw)
	if err != nil {
		s.logger.Debug("unusable generation output", zap.String("raw", raw))
	}
	s.record(out, err)
	return out, err
}

func (s *Service) record(out []models.Recipe, err error) {
	if err != nil {
		kind := KindOf(err)
		s.metrics.RecipeResult(string(kind))
		s.logger.Warn("recipe request failed", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	s.metrics.RecipeResult("ok")
	s.logger.Info("recipes generated", zap.Int("count", len(out)))
}
