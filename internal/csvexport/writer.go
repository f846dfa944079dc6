package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docforensics/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (16 columns). Each row is one detailed
// finding; an analysis with no findings still produces a single row with the
// finding columns left empty.
var columns = []string{
	"Analysis ID",
	"Provider",
	"Model",
	"Image Key",
	"Overall Assessment",
	"Confidence Score",
	"Image Quality Score",
	"Summary",
	"Prompt Version",
	"Created At",
	"Finding Description",
	"Finding Location",
	"Severity",
	"Artifact Type",
	"Evidence Strength",
	"Region",
}

// Writer wraps csv.Writer for exporting forensic analyses as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 16-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteAnalyses converts a batch of analyses to CSV rows and writes them,
// one row per detailed finding.
func (w *Writer) WriteAnalyses(analyses []domain.Analysis) error {
	for i := range analyses {
		for _, row := range analysisToRows(&analyses[i]) {
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func analysisToRows(a *domain.Analysis) [][]string {
	base := make([]string, len(columns))
	base[0] = a.ID.String()
	base[1] = string(a.Provider)
	base[2] = a.Model
	base[3] = a.ImageKey
	base[4] = string(a.Result.OverallAssessment)
	base[5] = formatScore(a.Result.ConfidenceScore)
	base[6] = formatScore(a.Result.ImageQualityScore)
	base[7] = a.Result.Summary
	base[8] = a.Result.PromptVersion
	base[9] = a.CreatedAt.Format(time.RFC3339)

	if len(a.Result.DetailedFindings) == 0 {
		return [][]string{base}
	}

	rows := make([][]string, 0, len(a.Result.DetailedFindings))
	for i := range a.Result.DetailedFindings {
		f := &a.Result.DetailedFindings[i]
		row := make([]string, len(base))
		copy(row, base)
		row[10] = f.Description
		row[11] = f.Location
		row[12] = string(f.Severity)
		row[13] = string(f.ArtifactType)
		row[14] = formatScore(f.EvidenceStrength)
		row[15] = formatRegion(f.Region)
		rows = append(rows, row)
	}
	return rows
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatRegion(r domain.Region) string {
	return fmt.Sprintf("%.2f,%.2f,%.2f,%.2f", r.X, r.Y, r.Width, r.Height)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
