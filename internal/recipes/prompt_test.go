package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrompt(t *testing.T) {
	p, err := FormatPrompt("Spicy  Tofu")
	require.NoError(t, err)

	assert.Contains(t, p, "Generate three recipes for a Spicy  Tofu dish.")
	for _, field := range []string{`"name"`, `"description"`, `"ingredients"`, `"instructions"`} {
		assert.Contains(t, p, field)
	}

	again, err := FormatPrompt("Spicy  Tofu")
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestFormatPrompt_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := FormatPrompt(in)
		assert.Equal(t, KindEmptyRequest, KindOf(err), "input %q", in)
	}
}
