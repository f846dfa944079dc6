package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docforensics/internal/analyzer"
	"docforensics/internal/domain"
	"docforensics/internal/modelparams"
	"docforensics/internal/port"
)

const (
	apiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.5-flash"
)

func init() {
	analyzer.Register(domain.ProviderGoogle, func(opts analyzer.Options) (port.DocumentAnalyzer, error) {
		return NewAnalyzer(opts), nil
	})
}

// Analyzer implements port.DocumentAnalyzer against the Gemini generateContent
// API.
type Analyzer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewAnalyzer creates a Gemini-backed analyzer. Options.Endpoint overrides the
// public API base (for testing).
func NewAnalyzer(opts analyzer.Options) *Analyzer {
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Analyzer{
		apiKey:   opts.Credential,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (a *Analyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	if err := analyzer.CheckContentType(input.ContentType); err != nil {
		return nil, err
	}

	prompt := analyzer.BuildForensicPrompt(input.UserContext)
	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"inline_data": map[string]interface{}{
							"mime_type": input.ContentType,
							"data":      encoded,
						},
					},
					{
						"text": prompt,
					},
				},
			},
		},
		"generationConfig": modelparams.GenerationConfig(input.Params),
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &analyzer.NetworkError{Provider: "gemini", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryAfter := analyzer.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, analyzer.NewProviderError("gemini", resp.StatusCode, respBody, retryAfter)
	}

	return &port.AnalyzeOutput{
		RawText:    analyzer.StripCodeFence(extractText(respBody)),
		ModelUsed:  a.model,
		PromptUsed: prompt,
	}, nil
}

// geminiResponse models the generateContent response envelope.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// extractText pulls the first text part of the first candidate. A missing or
// empty envelope yields "", which downstream normalization degrades to a
// defaulted report.
func extractText(body []byte) string {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if len(resp.Candidates) == 0 {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}
