package csvexport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforensics/internal/domain"
)

func sampleAnalysis() domain.Analysis {
	return domain.Analysis{
		ID:       uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002"),
		Provider: domain.ProviderGoogle,
		Model:    "gemini-2.5-flash",
		ImageKey: "images/deadbeef.jpg",
		Result: domain.AnalysisResult{
			OverallAssessment: domain.AssessmentSuspicious,
			ConfidenceScore:   0.85,
			ImageQualityScore: 0.5,
			Summary:           "Inconsistent shadows near the signature",
			PromptVersion:     domain.PromptVersion,
			DetailedFindings: []domain.DetailedFinding{
				{
					Description:      "Shadow direction mismatch",
					Location:         "bottom right",
					Severity:         domain.SeverityHigh,
					ArtifactType:     domain.ArtifactLightingInconsistency,
					EvidenceStrength: 0.9,
					Region:           domain.Region{X: 0.7, Y: 0.8, Width: 0.2, Height: 0.1},
				},
				{
					Description:      "Repeated texture patch",
					Location:         "top left",
					Severity:         domain.SeverityMedium,
					ArtifactType:     domain.ArtifactCloneStamp,
					EvidenceStrength: 0.6,
				},
			},
		},
		CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func writeAndParse(t *testing.T, analyses []domain.Analysis) [][]string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteAnalyses(analyses))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteHeader(t *testing.T) {
	records := writeAndParse(t, nil)
	require.Len(t, records, 1)
	assert.Len(t, records[0], 16)
	assert.Equal(t, "Analysis ID", records[0][0])
	assert.Equal(t, "Region", records[0][15])
}

func TestWriteAnalyses_OneRowPerFinding(t *testing.T) {
	records := writeAndParse(t, []domain.Analysis{sampleAnalysis()})
	require.Len(t, records, 3) // header + two findings

	first := records[1]
	assert.Equal(t, "a3bb189e-8bf9-3888-9912-ace4e6543002", first[0])
	assert.Equal(t, "google", first[1])
	assert.Equal(t, "gemini-2.5-flash", first[2])
	assert.Equal(t, "SUSPICIOUS_ANOMALIES_DETECTED", first[4])
	assert.Equal(t, "0.85", first[5])
	assert.Equal(t, "0.50", first[6])
	assert.Equal(t, "2026-03-14T10:30:00Z", first[9])
	assert.Equal(t, "Shadow direction mismatch", first[10])
	assert.Equal(t, "High", first[12])
	assert.Equal(t, "0.70,0.80,0.20,0.10", first[15])

	second := records[2]
	assert.Equal(t, first[0], second[0])
	assert.Equal(t, "Repeated texture patch", second[10])
	assert.Equal(t, "Medium", second[12])
	assert.Equal(t, "0.00,0.00,0.00,0.00", second[15])
}

func TestWriteAnalyses_NoFindingsStillProducesRow(t *testing.T) {
	a := sampleAnalysis()
	a.Result.DetailedFindings = nil

	records := writeAndParse(t, []domain.Analysis{a})
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "SUSPICIOUS_ANOMALIES_DETECTED", row[4])
	for i := 10; i < 16; i++ {
		assert.Empty(t, row[i])
	}
}

type failingWriter struct {
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestWriter_SurfacesStreamFailure(t *testing.T) {
	streamErr := errors.New("broken pipe")
	w := NewWriter(&failingWriter{err: streamErr})

	_ = w.WriteHeader()
	_ = w.WriteAnalyses([]domain.Analysis{sampleAnalysis()})
	w.Flush()

	assert.ErrorIs(t, w.Error(), streamErr)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces become underscores", "quarterly report 2026", "quarterly_report_2026"},
		{"special chars collapse", "lease!!<>agreement", "lease_agreement"},
		{"leading trailing trimmed", "__export__", "export"},
		{"keeps hyphens", "batch-42", "batch-42"},
		{"truncates long names", strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("My Analyses")
	assert.True(t, strings.HasPrefix(got, "My_Analyses_"))
	assert.True(t, strings.HasSuffix(got, ".csv"))
}
