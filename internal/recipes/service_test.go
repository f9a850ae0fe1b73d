package recipes

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rogerio-castellano/pantry-tracker/internal/llm"
	"github.com/rogerio-castellano/pantry-tracker/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	out     string
	err     error
	calls   int
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.out, g.err
}

func TestSuggest_Success(t *testing.T) {
	gen := &fakeGenerator{out: threeRecipes}
	svc := NewService(gen, zap.NewNop(), nil)

	got, err := svc.Suggest(context.Background(), "egg")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "for a egg dish")
}

func TestSuggest_EmptyRequestSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{out: threeRecipes}
	svc := NewService(gen, zap.NewNop(), nil)

	_, err := svc.Suggest(context.Background(), "   ")
	assert.Equal(t, KindEmptyRequest, KindOf(err))
	assert.Zero(t, gen.calls)
}

func TestSuggest_Classifies(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want Kind
	}{
		{"generator down", &fakeGenerator{err: llm.ErrGenerationUnavailable}, KindGenerationUnavailable},
		{"unexpected generator error", &fakeGenerator{err: errors.New("boom")}, KindGenerationUnavailable},
		{"garbled", &fakeGenerator{out: "[{"}, KindMalformedOutput},
		{"wrong shape", &fakeGenerator{out: `{"x":1}`}, KindSchemaMismatch},
		{"nothing valid", &fakeGenerator{out: `[{"name":"A"}]`}, KindNoValidRecipes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.gen, zap.NewNop(), nil)
			got, err := svc.Suggest(context.Background(), "soup")
			assert.Nil(t, got)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestSuggest_KeepsCause(t *testing.T) {
	svc := NewService(&fakeGenerator{err: llm.ErrGenerationUnavailable}, zap.NewNop(), nil)
	_, err := svc.Suggest(context.Background(), "soup")
	assert.ErrorIs(t, err, llm.ErrGenerationUnavailable)
}

func TestSuggest_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	svc := NewService(&fakeGenerator{out: threeRecipes}, zap.NewNop(), m)

	_, err := svc.Suggest(context.Background(), "soup")
	require.NoError(t, err)
	_, err = svc.Suggest(context.Background(), "")
	require.Error(t, err)

	n, err := testutil.GatherAndCount(m.Registry(), "pantry_recipe_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
