package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(RewritingFile, KeyRewriteActions)
	require.NoError(t, err)
	assert.Contains(t, prompt, "household carbon advisor")
	assert.Contains(t, prompt, "{{.Count}}")
	assert.Contains(t, prompt, "{{.Household}}")
	assert.Contains(t, prompt, "{{.Actions}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(RewritingFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(RewritingFile, KeyRewriteActions))
	})
}

func TestFormat(t *testing.T) {
	template := "Rewrite {{.Count}} actions for {{.Household}}"
	result := Format(template, map[string]string{"Count": "8", "Household": "{}"})
	assert.Equal(t, "Rewrite 8 actions for {}", result)

	// Placeholder without a value remains
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}))
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render(RewritingFile, KeyRewriteActions, map[string]string{
		"Count":     "8",
		"Household": `{"postcode": "SW1A 1AA"}`,
		"Actions":   "1. Wash your clothes in cold water.",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "exactly 8 sentences")
	assert.Contains(t, prompt, "SW1A 1AA")
	assert.NotContains(t, prompt, "{{.")
}

func TestRender_MissingValues(t *testing.T) {
	ClearCache()

	_, err := Render(RewritingFile, KeyRewriteActions, map[string]string{"Count": "8"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing values for Actions, Household")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(RewritingFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyRewriteActions}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get(RewritingFile, KeyRewriteActions)
	require.NoError(t, err)

	prompt2, err := Get(RewritingFile, KeyRewriteActions)
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
