package port

import (
	"context"

	"docforensics/internal/modelparams"
)

// AnalyzeInput carries the data needed for one forensic analysis call.
type AnalyzeInput struct {
	FileBytes   []byte
	ContentType string
	// UserContext is optional free text from the submitter, appended to the
	// forensic instruction template when non-empty.
	UserContext string
	Params      modelparams.Generation
}

// AnalyzeOutput is the raw outcome of a provider call, before normalization.
// RawText has code fences already stripped; it may be empty or non-JSON, which
// the normalizer degrades gracefully.
type AnalyzeOutput struct {
	RawText    string
	ModelUsed  string
	PromptUsed string
}

// DocumentAnalyzer abstracts one multimodal provider. Implementations issue
// exactly one network call per Analyze and never log credential values.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
}
