package modelparams

import (
	"fmt"

	"docforensics/internal/domain"
)

// ResponseFormat selects the output mode for extended-context models.
type ResponseFormat string

const (
	FormatText ResponseFormat = "text"
	FormatJSON ResponseFormat = "structured-json"
)

// Effort is the reasoning-effort level for reasoning models.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Parameter ranges. Values outside these bounds are a configuration error at
// the input layer; clamping happens only during result normalization.
const (
	TemperatureMin = 0.0
	TemperatureMax = 2.0
	TopPMin        = 0.0
	TopPMax        = 1.0
	PenaltyMin     = -2.0
	PenaltyMax     = 2.0
	MaxTokensMin   = 1
	MaxTokensMax   = 32768
)

// Generation holds the abstract generation parameters. Which fields apply is
// determined by the model family: sampling fields are ignored (and never
// transmitted) for the reasoning family; ResponseFormat applies only to the
// extended-context family; ReasoningEffort only to the reasoning family.
type Generation struct {
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	MaxTokens        int
	ResponseFormat   ResponseFormat
	ReasoningEffort  Effort
}

// Defaults returns the default generation parameters for a family. Forensic
// analysis wants near-deterministic output, hence the low temperature.
func Defaults(family Family) Generation {
	switch family {
	case FamilyReasoning:
		return Generation{
			MaxTokens:       16384,
			ReasoningEffort: EffortMedium,
		}
	case FamilyExtended:
		return Generation{
			Temperature:    0.1,
			TopP:           0.95,
			MaxTokens:      16384,
			ResponseFormat: FormatJSON,
		}
	default:
		return Generation{
			Temperature: 0.1,
			TopP:        0.95,
			MaxTokens:   8192,
		}
	}
}

// Validate rejects out-of-range parameters before any network call. This is
// the only place where parameters are rejected rather than clamped.
func Validate(family Family, g Generation) error {
	if g.MaxTokens < MaxTokensMin || g.MaxTokens > MaxTokensMax {
		return fmt.Errorf("%w: max tokens %d outside [%d,%d]",
			domain.ErrInvalidParameters, g.MaxTokens, MaxTokensMin, MaxTokensMax)
	}

	if family == FamilyReasoning {
		switch g.ReasoningEffort {
		case EffortLow, EffortMedium, EffortHigh:
			return nil
		default:
			return fmt.Errorf("%w: reasoning effort %q not one of low|medium|high",
				domain.ErrInvalidParameters, g.ReasoningEffort)
		}
	}

	if g.Temperature < TemperatureMin || g.Temperature > TemperatureMax {
		return fmt.Errorf("%w: temperature %g outside [%g,%g]",
			domain.ErrInvalidParameters, g.Temperature, TemperatureMin, TemperatureMax)
	}
	if g.TopP < TopPMin || g.TopP > TopPMax {
		return fmt.Errorf("%w: top_p %g outside [%g,%g]",
			domain.ErrInvalidParameters, g.TopP, TopPMin, TopPMax)
	}
	if g.FrequencyPenalty < PenaltyMin || g.FrequencyPenalty > PenaltyMax {
		return fmt.Errorf("%w: frequency penalty %g outside [%g,%g]",
			domain.ErrInvalidParameters, g.FrequencyPenalty, PenaltyMin, PenaltyMax)
	}
	if g.PresencePenalty < PenaltyMin || g.PresencePenalty > PenaltyMax {
		return fmt.Errorf("%w: presence penalty %g outside [%g,%g]",
			domain.ErrInvalidParameters, g.PresencePenalty, PenaltyMin, PenaltyMax)
	}

	if family == FamilyExtended {
		switch g.ResponseFormat {
		case FormatText, FormatJSON, "":
		default:
			return fmt.Errorf("%w: response format %q not one of text|structured-json",
				domain.ErrInvalidParameters, g.ResponseFormat)
		}
	}
	return nil
}
