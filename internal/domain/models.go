package domain

import (
	"time"

	"github.com/google/uuid"
)

// PromptVersion tags the forensic instruction template currently shipped with
// the service. It is also the fallback tag substituted when the model omits or
// mangles the promptVersion field.
const PromptVersion = "forensic-v3.2"

// Region is a normalized bounding box; all coordinates lie in [0,1] relative
// to the image dimensions.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LightingVector describes the estimated illumination of a region.
type LightingVector struct {
	DirectionDeg float64 `json:"directionDeg"`
	Softness     float64 `json:"softness"`
}

// CloneMatch is a pair of regions flagged as near-duplicates of each other.
type CloneMatch struct {
	RegionA    Region  `json:"regionA"`
	RegionB    Region  `json:"regionB"`
	Similarity float64 `json:"similarity"`
}

// DetailedFinding is one flagged anomaly within the analyzed document image.
type DetailedFinding struct {
	Description          string          `json:"description"`
	Location             string          `json:"location"`
	Severity             Severity        `json:"severity"`
	ArtifactType         ArtifactType    `json:"artifactType"`
	Region               Region          `json:"region"`
	EvidenceStrength     float64         `json:"evidenceStrength"`
	BenignAlternatives   []string        `json:"benignAlternatives"`
	CrossChecks          []string        `json:"crossChecks"`
	GeometricConsistency string          `json:"geometricConsistency,omitempty"`
	LightingVector       *LightingVector `json:"lightingVector,omitempty"`
	ResamplingIndicators []string        `json:"resamplingIndicators"`
	CloneMatches         []CloneMatch    `json:"cloneMatches"`
}

// AnalysisResult is the normalized forensic report. It is constructed once per
// analysis request and immutable afterwards.
type AnalysisResult struct {
	Analysis          string            `json:"analysis"`
	OverallAssessment OverallAssessment `json:"overallAssessment"`
	ConfidenceScore   float64           `json:"confidenceScore"`
	Summary           string            `json:"summary"`
	TechnicalSummary  string            `json:"technicalSummary"`
	DetailedFindings  []DetailedFinding `json:"detailedFindings"`
	CoverageNotes     string            `json:"coverageNotes"`
	ImageQualityScore float64           `json:"imageQualityScore"`
	AbstainedReasons  []string          `json:"abstainedReasons"`
	PromptVersion     string            `json:"promptVersion"`
}

// HighSeverityCount returns the number of findings graded High.
func (r *AnalysisResult) HighSeverityCount() int {
	n := 0
	for _, f := range r.DetailedFindings {
		if f.Severity == SeverityHigh {
			n++
		}
	}
	return n
}

// Analysis is a stored analysis record: one normalized report plus request
// metadata.
type Analysis struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Provider    Provider       `json:"provider" db:"provider"`
	Model       string         `json:"model" db:"model"`
	ImageKey    string         `json:"imageKey,omitempty" db:"image_key"`
	ContextNote string         `json:"contextNote,omitempty" db:"context_note"`
	Result      AnalysisResult `json:"result" db:"-"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`

	// CredentialWarning surfaces a key-format warning from credential
	// resolution. Session-only; never persisted.
	CredentialWarning string `json:"credentialWarning,omitempty" db:"-"`
}
