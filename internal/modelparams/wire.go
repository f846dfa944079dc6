package modelparams

// ChatFields returns the chat-completions body fields for a family. Pure field
// renaming: sampling keys are never emitted for the reasoning family.
func ChatFields(family Family, g Generation) map[string]interface{} {
	switch family {
	case FamilyReasoning:
		return map[string]interface{}{
			"max_completion_tokens": g.MaxTokens,
			"reasoning_effort":      string(g.ReasoningEffort),
		}
	case FamilyExtended:
		fields := map[string]interface{}{
			"temperature":           g.Temperature,
			"top_p":                 g.TopP,
			"frequency_penalty":     g.FrequencyPenalty,
			"presence_penalty":      g.PresencePenalty,
			"max_completion_tokens": g.MaxTokens,
		}
		if g.ResponseFormat == FormatJSON {
			fields["response_format"] = map[string]interface{}{"type": "json_object"}
		}
		return fields
	default:
		return map[string]interface{}{
			"temperature":       g.Temperature,
			"top_p":             g.TopP,
			"frequency_penalty": g.FrequencyPenalty,
			"presence_penalty":  g.PresencePenalty,
			"max_tokens":        g.MaxTokens,
		}
	}
}

// ResponsesFields returns the body fields for the responses-style structured
// input endpoint used by reasoning models.
func ResponsesFields(g Generation) map[string]interface{} {
	return map[string]interface{}{
		"max_output_tokens": g.MaxTokens,
		"reasoning": map[string]interface{}{
			"effort": string(g.ReasoningEffort),
		},
	}
}

// GenerationConfig returns the Gemini generationConfig fragment. Gemini models
// are always standard-family; JSON output is requested via responseMimeType.
func GenerationConfig(g Generation) map[string]interface{} {
	return map[string]interface{}{
		"temperature":      g.Temperature,
		"topP":             g.TopP,
		"maxOutputTokens":  g.MaxTokens,
		"responseMimeType": "application/json",
	}
}
