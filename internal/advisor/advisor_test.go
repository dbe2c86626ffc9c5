package advisor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonata-labs/resonata-api/internal/config"
	"github.com/resonata-labs/resonata-api/internal/llm"
	"github.com/resonata-labs/resonata-api/internal/models"
	"github.com/resonata-labs/resonata-api/internal/store"
)

func newTestService(t *testing.T, st *store.Store) *Service {
	t.Helper()
	factory := llm.NewProviderFactory("", "")
	cfg := &config.Config{AdvisorProvider: "mistral"}
	return NewService(factory, st, cfg, nil)
}

func TestGetPlanFallsBackWithoutProvider(t *testing.T) {
	svc := newTestService(t, nil)

	plan, source := svc.GetPlan(context.Background(), "melancholic", 0.3)
	require.NotNil(t, plan)
	assert.Equal(t, SourceFallback, source)
	assert.NoError(t, plan.Validate())
	assert.Equal(t, "D minor", plan.Key)
}

func TestGetPlanServesFromCache(t *testing.T) {
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cached, err := json.Marshal(models.FallbackPlan())
	require.NoError(t, err)
	require.True(t, st.CachePlan("tense", 0.5, cached))

	svc := newTestService(t, st)
	plan, source := svc.GetPlan(context.Background(), "tense", 0.5)
	require.NotNil(t, plan)
	assert.Equal(t, SourceCache, source)
	assert.Equal(t, 70, plan.Tempo)
}

func TestGetPlanIgnoresCorruptCacheEntries(t *testing.T) {
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.True(t, st.CachePlan("tense", 0.5, []byte("not json")))

	svc := newTestService(t, st)
	plan, source := svc.GetPlan(context.Background(), "tense", 0.5)
	require.NotNil(t, plan)
	assert.Equal(t, SourceFallback, source)
}

func TestModelsForProvider(t *testing.T) {
	svc := newTestService(t, nil)

	mistral, err := llm.NewProviderFactory("mk", "gk").GetProvider(context.Background(), "", "mistral")
	require.NoError(t, err)
	assert.Equal(t, mistralModelFallbacks, svc.modelsFor(mistral))

	gemini, err := llm.NewProviderFactory("mk", "gk").GetProvider(context.Background(), "", "gemini")
	require.NoError(t, err)
	assert.Equal(t, []string{geminiDefaultModel}, svc.modelsFor(gemini))
}

func TestParsePlan(t *testing.T) {
	assert.Nil(t, parsePlan([]byte("not json")))
	assert.Nil(t, parsePlan([]byte(`{"tempo":70}`)))

	valid, err := json.Marshal(models.FallbackPlan())
	require.NoError(t, err)
	plan := parsePlan(valid)
	require.NotNil(t, plan)
	assert.Equal(t, "D minor", plan.Key)
}
