package domain

// Provider identifies a multimodal AI vendor.
type Provider string

const (
	ProviderGoogle  Provider = "google"
	ProviderOpenAI  Provider = "openai"
	ProviderAzure   Provider = "azure-openai"
	ProviderBedrock Provider = "bedrock-openai"
)

// KnownProviders is the closed set of supported providers.
var KnownProviders = map[Provider]bool{
	ProviderGoogle:  true,
	ProviderOpenAI:  true,
	ProviderAzure:   true,
	ProviderBedrock: true,
}

// OverallAssessment is the categorical forensic verdict for a document.
type OverallAssessment string

const (
	AssessmentLikelyAuthentic OverallAssessment = "LIKELY_AUTHENTIC"
	AssessmentSuspicious      OverallAssessment = "SUSPICIOUS_ANOMALIES_DETECTED"
	AssessmentLikelyTampered  OverallAssessment = "LIKELY_TAMPERED"
	AssessmentManualReview    OverallAssessment = "MANUAL_REVIEW"
)

// KnownAssessments is the closed set of valid verdicts. Anything outside it is
// coerced to MANUAL_REVIEW during normalization.
var KnownAssessments = map[OverallAssessment]bool{
	AssessmentLikelyAuthentic: true,
	AssessmentSuspicious:      true,
	AssessmentLikelyTampered:  true,
	AssessmentManualReview:    true,
}

// Severity grades a single finding.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// KnownSeverities is the closed set of finding severities.
var KnownSeverities = map[Severity]bool{
	SeverityLow:    true,
	SeverityMedium: true,
	SeverityHigh:   true,
}

// ArtifactType classifies the kind of manipulation artifact a finding flags.
type ArtifactType string

const (
	ArtifactCloneStamp             ArtifactType = "CLONE_STAMP"
	ArtifactSplicing               ArtifactType = "SPLICING"
	ArtifactResampling             ArtifactType = "RESAMPLING"
	ArtifactCompressionAnomaly     ArtifactType = "COMPRESSION_ANOMALY"
	ArtifactLightingInconsistency  ArtifactType = "LIGHTING_INCONSISTENCY"
	ArtifactGeometricInconsistency ArtifactType = "GEOMETRIC_INCONSISTENCY"
	ArtifactTextManipulation       ArtifactType = "TEXT_MANIPULATION"
	ArtifactNoiseInconsistency     ArtifactType = "NOISE_INCONSISTENCY"
	ArtifactMetadataAnomaly        ArtifactType = "METADATA_ANOMALY"
	ArtifactOther                  ArtifactType = "OTHER"
)

// KnownArtifactTypes is the closed set of artifact classifications.
var KnownArtifactTypes = map[ArtifactType]bool{
	ArtifactCloneStamp:             true,
	ArtifactSplicing:               true,
	ArtifactResampling:             true,
	ArtifactCompressionAnomaly:     true,
	ArtifactLightingInconsistency:  true,
	ArtifactGeometricInconsistency: true,
	ArtifactTextManipulation:       true,
	ArtifactNoiseInconsistency:     true,
	ArtifactMetadataAnomaly:        true,
	ArtifactOther:                  true,
}

// FileType represents the allowed image types for analysis.
type FileType string

const (
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWebP FileType = "webp"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
	"image/webp": FileTypeWebP,
}

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWebP: "image/webp",
}
