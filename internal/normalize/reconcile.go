package normalize

import "docforensics/internal/domain"

// Confidence thresholds for the assessment-consistency policy.
const (
	lowConfidenceThreshold      = 0.4
	moderateConfidenceThreshold = 0.7
)

// Standard abstain reasons appended by the consistency policy.
const (
	AbstainLowConfidence      = "Overall confidence below 0.40; verdict deferred to manual review."
	AbstainModerateConfidence = "Authenticity could not be confirmed at moderate confidence; verdict deferred to manual review."
)

// Reconcile enforces consistency between the numeric confidence score and the
// categorical assessment. It returns the final assessment and the abstain
// reason to record, if any. The function is stable: feeding its own output
// back in (with the same confidence and finding counts) returns it unchanged.
//
//   - confidence < 0.4 forces MANUAL_REVIEW.
//   - 0.4 <= confidence < 0.7 downgrades LIKELY_AUTHENTIC to MANUAL_REVIEW;
//     the suspicious and tampered verdicts stand in this band.
//   - confidence >= 0.7 accepts the verdict, except that LIKELY_TAMPERED with
//     fewer than two High-severity findings is downgraded one level to
//     SUSPICIOUS_ANOMALIES_DETECTED.
//   - any value outside the verdict enumeration becomes MANUAL_REVIEW
//     regardless of confidence.
func Reconcile(assessment domain.OverallAssessment, confidence float64, highSeverityCount int) (domain.OverallAssessment, string) {
	if !domain.KnownAssessments[assessment] {
		assessment = domain.AssessmentManualReview
	}

	switch {
	case confidence < lowConfidenceThreshold:
		return domain.AssessmentManualReview, AbstainLowConfidence

	case confidence < moderateConfidenceThreshold:
		if assessment == domain.AssessmentLikelyAuthentic {
			return domain.AssessmentManualReview, AbstainModerateConfidence
		}
		return assessment, ""

	default:
		if assessment == domain.AssessmentLikelyTampered && highSeverityCount < 2 {
			return domain.AssessmentSuspicious, ""
		}
		return assessment, ""
	}
}
