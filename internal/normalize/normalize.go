// Package normalize turns arbitrary, possibly malformed model output into a
// well-formed, internally consistent AnalysisResult. It never fails: a
// degraded defaulted report is always preferred to a hard error here, because
// losing the whole report costs the caller more than a padded one.
package normalize

import (
	"encoding/json"
	"math"

	"docforensics/internal/domain"
)

// Placeholder values substituted for missing or wrong-typed fields.
const (
	DefaultAnalysisText         = "Analysis unavailable."
	DefaultSummaryText          = "No summary was provided by the model."
	DefaultTechnicalSummaryText = "No technical summary was provided by the model."
	DefaultCoverageNotes        = "Coverage not reported."
	DefaultFindingDescription   = "Unspecified anomaly"
	DefaultFindingLocation      = "Unknown"

	defaultConfidence       = 0.5
	defaultImageQuality     = 0.7
	defaultEvidenceStrength = 0.5
	defaultRegionExtent     = 0.1
	defaultSimilarity       = 0.5
	defaultSoftness         = 0.5
)

// Normalize parses raw model output and repairs every field against the
// report schema, then applies the confidence/assessment consistency policy.
// Idempotent: normalizing an already-normalized result is a no-op.
func Normalize(raw string) *domain.AnalysisResult {
	var payload map[string]interface{}
	// A parse failure leaves payload nil; every field then takes its default.
	_ = json.Unmarshal([]byte(raw), &payload)

	result := &domain.AnalysisResult{
		Analysis:          strField(payload, "analysis", DefaultAnalysisText),
		ConfidenceScore:   clamp01(numField(payload, "confidenceScore", defaultConfidence)),
		Summary:           strField(payload, "summary", DefaultSummaryText),
		TechnicalSummary:  strField(payload, "technicalSummary", DefaultTechnicalSummaryText),
		DetailedFindings:  repairFindings(payload["detailedFindings"]),
		CoverageNotes:     strField(payload, "coverageNotes", DefaultCoverageNotes),
		ImageQualityScore: clamp01(numField(payload, "imageQualityScore", defaultImageQuality)),
		AbstainedReasons:  strList(payload["abstainedReasons"]),
		PromptVersion:     strField(payload, "promptVersion", domain.PromptVersion),
	}

	stated := domain.OverallAssessment(strField(payload, "overallAssessment", ""))
	assessment, reason := Reconcile(stated, result.ConfidenceScore, result.HighSeverityCount())
	result.OverallAssessment = assessment
	if reason != "" {
		result.AbstainedReasons = appendUnique(result.AbstainedReasons, reason)
	}

	return result
}

func repairFindings(v interface{}) []domain.DetailedFinding {
	items, ok := v.([]interface{})
	if !ok {
		return []domain.DetailedFinding{}
	}
	findings := make([]domain.DetailedFinding, 0, len(items))
	for _, item := range items {
		entry, _ := item.(map[string]interface{})
		findings = append(findings, repairFinding(entry))
	}
	return findings
}

func repairFinding(m map[string]interface{}) domain.DetailedFinding {
	f := domain.DetailedFinding{
		Description:          strField(m, "description", DefaultFindingDescription),
		Location:             strField(m, "location", DefaultFindingLocation),
		Severity:             repairSeverity(m["severity"]),
		ArtifactType:         repairArtifactType(m["artifactType"]),
		Region:               repairRegion(m["region"]),
		EvidenceStrength:     clamp01(numField(m, "evidenceStrength", defaultEvidenceStrength)),
		BenignAlternatives:   strList(m["benignAlternatives"]),
		CrossChecks:          strList(m["crossChecks"]),
		GeometricConsistency: strField(m, "geometricConsistency", ""),
		ResamplingIndicators: strList(m["resamplingIndicators"]),
		CloneMatches:         repairCloneMatches(m["cloneMatches"]),
	}
	if lv, ok := m["lightingVector"].(map[string]interface{}); ok {
		f.LightingVector = &domain.LightingVector{
			DirectionDeg: wrapDegrees(numField(lv, "directionDeg", 0)),
			Softness:     clamp01(numField(lv, "softness", defaultSoftness)),
		}
	}
	return f
}

func repairSeverity(v interface{}) domain.Severity {
	if s, ok := v.(string); ok {
		sev := domain.Severity(s)
		if domain.KnownSeverities[sev] {
			return sev
		}
	}
	return domain.SeverityLow
}

func repairArtifactType(v interface{}) domain.ArtifactType {
	if s, ok := v.(string); ok {
		at := domain.ArtifactType(s)
		if domain.KnownArtifactTypes[at] {
			return at
		}
	}
	return domain.ArtifactOther
}

func repairRegion(v interface{}) domain.Region {
	m, _ := v.(map[string]interface{})
	return domain.Region{
		X:      clamp01(numField(m, "x", 0)),
		Y:      clamp01(numField(m, "y", 0)),
		Width:  clamp01(numField(m, "width", defaultRegionExtent)),
		Height: clamp01(numField(m, "height", defaultRegionExtent)),
	}
}

func repairCloneMatches(v interface{}) []domain.CloneMatch {
	items, ok := v.([]interface{})
	if !ok {
		return []domain.CloneMatch{}
	}
	matches := make([]domain.CloneMatch, 0, len(items))
	for _, item := range items {
		entry, _ := item.(map[string]interface{})
		matches = append(matches, domain.CloneMatch{
			RegionA:    repairRegion(entry["regionA"]),
			RegionB:    repairRegion(entry["regionB"]),
			Similarity: clamp01(numField(entry, "similarity", defaultSimilarity)),
		})
	}
	return matches
}

func strField(m map[string]interface{}, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func numField(m map[string]interface{}, key string, def float64) float64 {
	if n, ok := m[key].(float64); ok && !math.IsNaN(n) {
		return n
	}
	return def
}

func strList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// wrapDegrees normalizes an angle into [0,360).
func wrapDegrees(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}
