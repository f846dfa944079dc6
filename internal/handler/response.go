package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docforensics/internal/analyzer"
	"docforensics/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain and provider errors to HTTP status codes
// and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var provErr *analyzer.ProviderError
	if errors.As(err, &provErr) {
		return mapProviderError(provErr)
	}
	var netErr *analyzer.NetworkError
	if errors.As(err, &netErr) {
		return http.StatusBadGateway, "PROVIDER_UNREACHABLE", "could not reach the AI provider"
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrUnsupportedProvider):
		return http.StatusBadRequest, "UNSUPPORTED_PROVIDER", "unsupported provider; allowed: google, openai, azure-openai, bedrock-openai"
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusBadRequest, "MISSING_CREDENTIAL", "no usable API credential for this provider"
	case errors.Is(err, domain.ErrInvalidParameters):
		return http.StatusBadRequest, "INVALID_PARAMETERS", "generation parameters out of range"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: jpg, png, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// mapProviderError classifies upstream provider HTTP failures. Auth failures
// point at the credential, 429 reports rate limiting, and other 4xx responses
// usually mean the model rejected the request shape.
func mapProviderError(provErr *analyzer.ProviderError) (status int, code, msg string) {
	switch {
	case provErr.StatusCode == http.StatusUnauthorized || provErr.StatusCode == http.StatusForbidden:
		return http.StatusBadGateway, "PROVIDER_AUTH_FAILED", "the AI provider rejected the API credential"
	case provErr.StatusCode == http.StatusTooManyRequests:
		return http.StatusTooManyRequests, "PROVIDER_RATE_LIMITED", "the AI provider is rate limiting requests; retry later"
	case provErr.StatusCode >= 400 && provErr.StatusCode < 500:
		return http.StatusBadGateway, "MODEL_INCOMPATIBLE", "the AI provider rejected the request; the model may not support image input or the requested parameters"
	default:
		return http.StatusBadGateway, "PROVIDER_ERROR", "the AI provider returned an error"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Error("internal error",
			zap.String("request_id", c.GetString("request_id")), zap.Error(err))
	}
	RespondError(c, status, code, msg)
}
