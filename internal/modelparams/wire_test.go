package modelparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatFields_ReasoningNeverEmitsSampling(t *testing.T) {
	g := Defaults(FamilyReasoning)
	g.Temperature = 0.7 // set but must not leak onto the wire

	fields := ChatFields(FamilyReasoning, g)

	assert.Equal(t, 16384, fields["max_completion_tokens"])
	assert.Equal(t, "medium", fields["reasoning_effort"])
	for _, forbidden := range []string{"temperature", "top_p", "frequency_penalty", "presence_penalty", "max_tokens", "response_format"} {
		assert.NotContains(t, fields, forbidden)
	}
}

func TestChatFields_Extended(t *testing.T) {
	g := Defaults(FamilyExtended)
	fields := ChatFields(FamilyExtended, g)

	assert.Equal(t, 16384, fields["max_completion_tokens"])
	assert.Equal(t, 0.1, fields["temperature"])
	assert.NotContains(t, fields, "max_tokens")
	assert.NotContains(t, fields, "reasoning_effort")

	rf, ok := fields["response_format"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])
}

func TestChatFields_ExtendedTextFormatOmitsResponseFormat(t *testing.T) {
	g := Defaults(FamilyExtended)
	g.ResponseFormat = FormatText
	fields := ChatFields(FamilyExtended, g)
	assert.NotContains(t, fields, "response_format")
}

func TestChatFields_Standard(t *testing.T) {
	g := Defaults(FamilyStandard)
	fields := ChatFields(FamilyStandard, g)

	assert.Equal(t, 8192, fields["max_tokens"])
	assert.Equal(t, 0.1, fields["temperature"])
	assert.Equal(t, 0.95, fields["top_p"])
	assert.NotContains(t, fields, "max_completion_tokens")
	assert.NotContains(t, fields, "response_format")
	assert.NotContains(t, fields, "reasoning_effort")
}

func TestResponsesFields(t *testing.T) {
	g := Defaults(FamilyReasoning)
	g.ReasoningEffort = EffortHigh
	fields := ResponsesFields(g)

	assert.Equal(t, 16384, fields["max_output_tokens"])
	reasoning, ok := fields["reasoning"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "high", reasoning["effort"])
}

func TestGenerationConfig(t *testing.T) {
	g := Defaults(FamilyStandard)
	cfg := GenerationConfig(g)

	assert.Equal(t, 0.1, cfg["temperature"])
	assert.Equal(t, 0.95, cfg["topP"])
	assert.Equal(t, 8192, cfg["maxOutputTokens"])
	assert.Equal(t, "application/json", cfg["responseMimeType"])
}
