package modelparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Reasoning(t *testing.T) {
	for _, model := range []string{"o1", "o1-mini", "o1-pro", "o3", "o3-mini", "o3-pro", "o4-mini"} {
		assert.Equal(t, FamilyReasoning, Classify(model), "model %s", model)
	}
}

func TestClassify_Extended(t *testing.T) {
	for _, model := range []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4.1-nano", "gpt-5", "gpt-5-mini", "gpt-5-nano"} {
		assert.Equal(t, FamilyExtended, Classify(model), "model %s", model)
	}
}

func TestClassify_Standard(t *testing.T) {
	for _, model := range []string{"gpt-4o", "gpt-4o-mini", "gemini-2.5-flash", "gemini-2.5-pro"} {
		assert.Equal(t, FamilyStandard, Classify(model), "model %s", model)
	}
}

func TestClassify_UnknownFallsBackToStandard(t *testing.T) {
	assert.Equal(t, FamilyStandard, Classify("some-future-model"))
	assert.Equal(t, FamilyStandard, Classify(""))
	// Prefix similarity to a known family does not matter; only exact names do.
	assert.Equal(t, FamilyStandard, Classify("o3-mini-2025"))
	assert.Equal(t, FamilyStandard, Classify("gpt-5-turbo"))
}
