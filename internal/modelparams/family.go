// Package modelparams classifies model names into families and maps abstract
// generation parameters onto provider wire fields.
package modelparams

// Family is the parameter/endpoint shape a model requires.
type Family string

const (
	// FamilyStandard covers vision-chat models using the classic sampling
	// parameter set and max_tokens.
	FamilyStandard Family = "standard"
	// FamilyExtended covers extended-context models using
	// max_completion_tokens and an optional structured-output mode.
	FamilyExtended Family = "extended-context"
	// FamilyReasoning covers reasoning models using an output-token limit and
	// a reasoning-effort level; sampling parameters do not apply.
	FamilyReasoning Family = "reasoning"
)

var reasoningModels = map[string]bool{
	"o1":      true,
	"o1-mini": true,
	"o1-pro":  true,
	"o3":      true,
	"o3-mini": true,
	"o3-pro":  true,
	"o4-mini": true,
}

var extendedModels = map[string]bool{
	"gpt-4.1":      true,
	"gpt-4.1-mini": true,
	"gpt-4.1-nano": true,
	"gpt-5":        true,
	"gpt-5-mini":   true,
	"gpt-5-nano":   true,
}

// Classify maps a model name to its family. Unknown names deliberately fall
// back to the standard family so that new vision-chat models work without a
// code change.
func Classify(model string) Family {
	switch {
	case reasoningModels[model]:
		return FamilyReasoning
	case extendedModels[model]:
		return FamilyExtended
	default:
		return FamilyStandard
	}
}
