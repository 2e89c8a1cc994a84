package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("My headline", "My whole page")

	assert.Contains(t, got, "--- HOOK TEXT (headline + opening paragraph) ---\nMy headline")
	assert.Contains(t, got, "--- FULL PAGE TEXT (context for persona and jargon) ---\nMy whole page")

	// every label the parser matches must be promised to the model
	for _, label := range []string{
		"HOOK_SCORE:",
		"HOOK_SCORE_JUSTIFICATION:",
		"AUDIENCE_PERSONA:",
		"AUDIENCE_PERSONA_JUSTIFICATION:",
		"CONVERSION_KILLERS:",
	} {
		assert.True(t, strings.Contains(got, label), "prompt is missing %s", label)
	}

	assert.True(t, strings.HasSuffix(got, "Do not include any explanations, JSON, or Markdown."))
}
