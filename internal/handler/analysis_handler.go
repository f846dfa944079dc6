package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"docforensics/internal/csvexport"
	"docforensics/internal/domain"
	"docforensics/internal/service"
)

// AnalysisHandler handles forensic analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Create handles POST /api/v1/analyses
// @Summary Analyze a document image
// @Description Upload a document image (JPG, PNG, WebP) and run forensic tampering analysis through the selected AI provider
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document image (JPG, PNG, or WebP)"
// @Param provider formData string true "AI provider" Enums(google, openai, azure-openai, bedrock-openai)
// @Param model formData string false "Model name; defaults to the provider's configured model"
// @Param context formData string false "Free-text context about the document"
// @Param api_key formData string false "Per-request API credential; overrides stored and configured keys"
// @Param temperature formData number false "Sampling temperature (0-2)"
// @Param top_p formData number false "Nucleus sampling (0-1)"
// @Param max_tokens formData int false "Output token cap (1-32768)"
// @Param reasoning_effort formData string false "Reasoning effort for reasoning models" Enums(low, medium, high)
// @Success 201 {object} Response{data=AnalysisResponse} "Analysis completed"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Provider rate limited"
// @Failure 502 {object} ErrorResponseBody "Provider error"
// @Router /analyses [post]
func (h *AnalysisHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	provider := domain.Provider(c.PostForm("provider"))
	if _, ok := domain.KnownProviders[provider]; !ok {
		HandleError(c, domain.ErrUnsupportedProvider)
		return
	}

	req := &service.AnalyzeRequest{
		Provider:        provider,
		Model:           c.PostForm("model"),
		FileBytes:       fileBytes,
		ContentType:     header.Header.Get("Content-Type"),
		ContextNote:     c.PostForm("context"),
		APIKey:          c.PostForm("api_key"),
		ReasoningEffort: c.PostForm("reasoning_effort"),
		ResponseFormat:  c.PostForm("response_format"),
	}
	if err := parseOverrides(c, req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}

	analysis, err := h.analysisService.Analyze(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, toAnalysisResponse(analysis))
}

// List handles GET /api/v1/analyses
// @Summary List analyses
// @Description List stored analyses with pagination, newest first
// @Tags analyses
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]AnalysisResponse,meta=PagMeta} "List of analyses"
// @Router /analyses [get]
func (h *AnalysisHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	analyses, total, err := h.analysisService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	out := make([]AnalysisResponse, 0, len(analyses))
	for i := range analyses {
		out = append(out, *toAnalysisResponse(&analyses[i]))
	}
	RespondPaginated(c, out, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/analyses/:id
// @Summary Get analysis by ID
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=AnalysisResponse} "Analysis"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	analysis, err := h.analysisService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toAnalysisResponse(analysis))
}

// Delete handles DELETE /api/v1/analyses/:id
// @Summary Delete an analysis
// @Description Delete a stored analysis and its archived image
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Analysis deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Router /analyses/{id} [delete]
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	if err := h.analysisService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "analysis deleted"})
}

// Export handles GET /api/v1/analyses/export
// @Summary Export analyses as CSV
// @Description Export stored analyses as CSV, one row per finding
// @Tags analyses
// @Produce text/csv
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 1000)" default(100)
// @Success 200 {string} string "CSV file"
// @Router /analyses/export [get]
func (h *AnalysisHandler) Export(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	analyses, _, err := h.analysisService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("analyses")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	// The status line is already sent once streaming starts; a mid-stream
	// failure can only truncate the body, so it is logged, not mapped.
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		logExportFailure(c, err)
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		logExportFailure(c, err)
		return
	}
	if err := w.WriteAnalyses(analyses); err != nil {
		logExportFailure(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logExportFailure(c, err)
	}
}

func logExportFailure(c *gin.Context, err error) {
	zap.L().Warn("analysisHandler.Export: csv stream truncated",
		zap.String("request_id", c.GetString("request_id")), zap.Error(err))
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func parseOverrides(c *gin.Context, req *service.AnalyzeRequest) error {
	if v := c.PostForm("temperature"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		req.Temperature = &f
	}
	if v := c.PostForm("top_p"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		req.TopP = &f
	}
	if v := c.PostForm("max_tokens"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		req.MaxTokens = &n
	}
	if v := c.PostForm("frequency_penalty"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		req.FrequencyPenalty = &f
	}
	if v := c.PostForm("presence_penalty"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		req.PresencePenalty = &f
	}
	return nil
}
