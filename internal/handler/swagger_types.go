package handler

import (
	"time"

	"docforensics/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SetCredentialRequest represents the store credential request body.
type SetCredentialRequest struct {
	APIKey string `json:"api_key" binding:"required" example:"sk-proj-abc123def456ghi789"`
}

// --- Response Types ---

// Response is the generic success envelope (alias for swag annotations).
type Response = APIResponse

// ErrorResponseBody represents an error response.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// AnalysisResponse represents a stored forensic analysis.
type AnalysisResponse struct {
	ID                string                `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Provider          string                `json:"provider" example:"openai"`
	Model             string                `json:"model" example:"gpt-4o"`
	ImageKey          string                `json:"image_key" example:"images/9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08.jpg"`
	ContextNote       string                `json:"context_note,omitempty" example:"scanned lease agreement, page 2"`
	Result            domain.AnalysisResult `json:"result"`
	CredentialWarning string                `json:"credential_warning,omitempty" example:"user key malformed for openai; fell back to deployment default"`
	CreatedAt         time.Time             `json:"created_at" example:"2025-01-15T10:30:00Z"`
}

// SetCredentialResponse represents the store credential response.
type SetCredentialResponse struct {
	Provider string `json:"provider" example:"openai"`
	Warning  string `json:"warning,omitempty" example:"credential does not match the expected format for openai"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

func toAnalysisResponse(a *domain.Analysis) *AnalysisResponse {
	return &AnalysisResponse{
		ID:                a.ID.String(),
		Provider:          string(a.Provider),
		Model:             a.Model,
		ImageKey:          a.ImageKey,
		ContextNote:       a.ContextNote,
		Result:            a.Result,
		CredentialWarning: a.CredentialWarning,
		CreatedAt:         a.CreatedAt,
	}
}
