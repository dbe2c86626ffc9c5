// Package advisor obtains a structural plan for a requested mood: first from
// the cache, then from an LLM provider, and finally from the built-in
// fallback plan. A caller always gets a usable plan; the source string says
// which path produced it.
package advisor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/resonata-labs/resonata-api/internal/config"
	"github.com/resonata-labs/resonata-api/internal/llm"
	"github.com/resonata-labs/resonata-api/internal/logger"
	"github.com/resonata-labs/resonata-api/internal/metrics"
	"github.com/resonata-labs/resonata-api/internal/models"
	"github.com/resonata-labs/resonata-api/internal/observability"
	"github.com/resonata-labs/resonata-api/internal/prompt"
	"github.com/resonata-labs/resonata-api/internal/store"
)

// Plan sources reported to the caller.
const (
	SourceCache    = "cache"
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// Models tried in order when asking Mistral for a plan.
var mistralModelFallbacks = []string{
	"mistral-medium-latest",
	"mistral-medium",
	"mistral-large-latest",
}

const geminiDefaultModel = "gemini-2.0-flash"

// Service resolves structural plans.
type Service struct {
	factory   *llm.ProviderFactory
	store     *store.Store
	cfg       *config.Config
	prompts   *prompt.Builder
	cwMetrics *metrics.Client
}

// NewService creates the advisory service. store and cwMetrics may be nil.
func NewService(factory *llm.ProviderFactory, st *store.Store, cfg *config.Config, cwMetrics *metrics.Client) *Service {
	return &Service{
		factory:   factory,
		store:     st,
		cfg:       cfg,
		prompts:   prompt.NewPromptBuilder(),
		cwMetrics: cwMetrics,
	}
}

// GetPlan returns a validated structural plan for the mood and innovation
// level, plus the source it came from. It never returns an error: every
// failure path degrades to the fallback plan.
func (s *Service) GetPlan(ctx context.Context, mood string, innovation float64) (*models.StructuralPlan, string) {
	span := sentry.StartSpan(ctx, "advisor.get_plan")
	defer span.Finish()
	span.SetData("mood", mood)
	span.SetData("innovation", innovation)

	// Cache first.
	if cached, ok := s.store.CachedPlan(mood, innovation); ok {
		if plan := parsePlan(cached); plan != nil {
			logger.Info("Plan served from cache", logger.Fields{"mood": mood})
			span.SetTag("plan_source", SourceCache)
			return plan, SourceCache
		}
	}

	// Provider second.
	if plan := s.askProvider(ctx, mood, innovation); plan != nil {
		span.SetTag("plan_source", SourceLLM)
		return plan, SourceLLM
	}

	// Built-in plan last.
	logger.Info("Using fallback structural plan", logger.Fields{"mood": mood})
	span.SetTag("plan_source", SourceFallback)
	return models.FallbackPlan(), SourceFallback
}

func (s *Service) askProvider(ctx context.Context, mood string, innovation float64) *models.StructuralPlan {
	provider, err := s.factory.GetProvider(ctx, "", s.cfg.AdvisorProvider)
	if err != nil {
		logger.Debug("No advisory provider available", logger.Fields{"error": err.Error()})
		return nil
	}

	trace := observability.GetClient().StartTrace(ctx, "plan-advisory", map[string]interface{}{
		"mood":       mood,
		"innovation": innovation,
	})
	defer trace.Finish()

	systemPrompt, err := s.prompts.BuildSystemPrompt()
	if err != nil {
		return nil
	}
	planPrompt, err := s.prompts.BuildStructuralPlanPrompt(mood, innovation)
	if err != nil {
		return nil
	}
	schema := &llm.OutputSchema{
		Name:        "structural_plan",
		Description: "Key, tempo, and ordered sections for a short piano piece",
		Schema:      llm.GetStructuralPlanSchema(),
	}

	for _, model := range s.modelsFor(provider) {
		start := time.Now()
		gen := trace.Generation("advise-"+model, nil)

		resp, err := provider.Advise(ctx, &llm.AdvisoryRequest{
			Model:        model,
			Prompt:       planPrompt,
			SystemPrompt: systemPrompt,
			OutputSchema: schema,
		})
		if err != nil {
			gen.SetLevel("ERROR")
			gen.Finish()
			logger.Warn("Advisory call failed", logger.Fields{
				"model": model,
				"error": err.Error(),
			})
			continue
		}

		gen.LogAdvisoryResponse(model, planPrompt, resp, map[string]interface{}{"mood": mood})
		gen.Finish()
		logger.LogAdvisoryRequest(ctx, model, time.Since(start), resp.Usage.Map(), nil)
		s.cwMetrics.RecordTokenUsage(model,
			int(resp.Usage.TotalTokens), int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens))

		plan := parsePlan([]byte(resp.RawOutput))
		if plan == nil {
			logger.Warn("Advisory response was not a valid plan", logger.Fields{"model": model})
			continue
		}

		if planJSON, err := json.Marshal(plan); err == nil {
			s.store.CachePlan(mood, innovation, planJSON)
		}
		return plan
	}

	return nil
}

// modelsFor picks the model candidates for the active provider.
func (s *Service) modelsFor(provider llm.Provider) []string {
	if provider.Name() == "gemini" {
		return []string{geminiDefaultModel}
	}
	return mistralModelFallbacks
}

// parsePlan unmarshals and validates plan JSON; nil means unusable.
func parsePlan(data []byte) *models.StructuralPlan {
	var plan models.StructuralPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil
	}
	if err := plan.Validate(); err != nil {
		return nil
	}
	return &plan
}

