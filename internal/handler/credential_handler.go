package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docforensics/internal/domain"
	"docforensics/internal/service"
)

// CredentialHandler handles stored provider credential endpoints.
type CredentialHandler struct {
	credentialService service.CredentialService
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(credentialService service.CredentialService) *CredentialHandler {
	return &CredentialHandler{credentialService: credentialService}
}

// Set handles PUT /api/v1/credentials/:provider
// @Summary Store a provider credential
// @Description Store an API credential for a provider. A malformed-looking key is stored anyway, with a warning in the response.
// @Tags credentials
// @Accept json
// @Produce json
// @Param provider path string true "Provider" Enums(google, openai, azure-openai, bedrock-openai)
// @Param body body SetCredentialRequest true "Credential"
// @Success 200 {object} Response{data=SetCredentialResponse} "Credential stored"
// @Failure 400 {object} ErrorResponseBody "Unknown provider or empty credential"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /credentials/{provider} [put]
func (h *CredentialHandler) Set(c *gin.Context) {
	var req SetCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "api_key field is required")
		return
	}

	provider := domain.Provider(c.Param("provider"))
	warning, err := h.credentialService.Set(c.Request.Context(), provider, req.APIKey)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, SetCredentialResponse{Provider: string(provider), Warning: warning})
}

// Clear handles DELETE /api/v1/credentials/:provider
// @Summary Clear a stored provider credential
// @Tags credentials
// @Produce json
// @Param provider path string true "Provider" Enums(google, openai, azure-openai, bedrock-openai)
// @Success 200 {object} Response{data=MessageResponse} "Credential cleared"
// @Failure 400 {object} ErrorResponseBody "Unknown provider"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /credentials/{provider} [delete]
func (h *CredentialHandler) Clear(c *gin.Context) {
	provider := domain.Provider(c.Param("provider"))
	if err := h.credentialService.Clear(c.Request.Context(), provider); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "credential cleared"})
}
