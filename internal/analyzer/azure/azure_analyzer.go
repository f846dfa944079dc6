package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docforensics/internal/analyzer"
	"docforensics/internal/analyzer/openai"
	"docforensics/internal/domain"
	"docforensics/internal/modelparams"
	"docforensics/internal/port"
)

const (
	defaultChatAPIVersion      = "2024-10-21"
	defaultResponsesAPIVersion = "2025-03-01-preview"
)

func init() {
	analyzer.Register(domain.ProviderAzure, func(opts analyzer.Options) (port.DocumentAnalyzer, error) {
		return NewAnalyzer(opts)
	})
}

// Analyzer implements port.DocumentAnalyzer against an Azure OpenAI resource.
// Standard and extended-context deployments use the chat completions endpoint;
// reasoning deployments use the responses endpoint with structured input.
type Analyzer struct {
	apiKey     string
	model      string
	deployment string
	endpoint   string
	apiVersion string
	client     *http.Client
}

// NewAnalyzer creates an Azure-backed analyzer. Options.Endpoint is the
// resource base URL (https://<resource>.openai.azure.com) and is required;
// Options.Deployment defaults to the model name.
func NewAnalyzer(opts analyzer.Options) (*Analyzer, error) {
	endpoint := strings.TrimSuffix(opts.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("azure: resource endpoint is required")
	}
	deployment := opts.Deployment
	if deployment == "" {
		deployment = opts.Model
	}
	if deployment == "" {
		return nil, fmt.Errorf("azure: deployment name or model is required")
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Analyzer{
		apiKey:     opts.Credential,
		model:      opts.Model,
		deployment: deployment,
		endpoint:   endpoint,
		apiVersion: opts.APIVersion,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

func (a *Analyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	if err := analyzer.CheckContentType(input.ContentType); err != nil {
		return nil, err
	}

	prompt := analyzer.BuildForensicPrompt(input.UserContext)
	family := modelparams.Classify(a.model)

	var (
		url     string
		reqBody map[string]interface{}
	)
	if family == modelparams.FamilyReasoning {
		url = fmt.Sprintf("%s/openai/responses?api-version=%s", a.endpoint, a.version(defaultResponsesAPIVersion))
		reqBody = a.buildResponsesBody(input, prompt)
	} else {
		url = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			a.endpoint, a.deployment, a.version(defaultChatAPIVersion))
		reqBody = a.buildChatBody(input, prompt, family)
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &analyzer.NetworkError{Provider: "azure", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryAfter := analyzer.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, analyzer.NewProviderError("azure", resp.StatusCode, respBody, retryAfter)
	}

	var text string
	if family == modelparams.FamilyReasoning {
		text = extractResponsesText(respBody)
	} else {
		text = openai.ExtractChatText(respBody)
	}

	return &port.AnalyzeOutput{
		RawText:    analyzer.StripCodeFence(text),
		ModelUsed:  a.deployment,
		PromptUsed: prompt,
	}, nil
}

func (a *Analyzer) version(fallback string) string {
	if a.apiVersion != "" {
		return a.apiVersion
	}
	return fallback
}

// buildChatBody assembles the chat-style shape: system message plus a user
// message with image and text parts.
func (a *Analyzer) buildChatBody(input port.AnalyzeInput, prompt string, family modelparams.Family) map[string]interface{} {
	body := map[string]interface{}{
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": prompt,
			},
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "image_url",
						"image_url": map[string]interface{}{
							"url": analyzer.DataURL(input.ContentType, input.FileBytes),
						},
					},
					{
						"type": "text",
						"text": "Perform the forensic analysis now and return only the JSON object.",
					},
				},
			},
		},
	}
	for k, v := range modelparams.ChatFields(family, input.Params) {
		body[k] = v
	}
	if family == modelparams.FamilyStandard {
		body["response_format"] = map[string]interface{}{"type": "json_object"}
	}
	return body
}

// buildResponsesBody assembles the single-turn structured-input shape for
// reasoning deployments: one text part and one image part under a user role.
func (a *Analyzer) buildResponsesBody(input port.AnalyzeInput, prompt string) map[string]interface{} {
	body := map[string]interface{}{
		"model": a.deployment,
		"input": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "input_text",
						"text": prompt,
					},
					{
						"type":      "input_image",
						"image_url": analyzer.DataURL(input.ContentType, input.FileBytes),
					},
				},
			},
		},
	}
	for k, v := range modelparams.ResponsesFields(input.Params) {
		body[k] = v
	}
	return body
}

// responsesEnvelope models the responses endpoint output array.
type responsesEnvelope struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// extractResponsesText scans the output array for the first "message" entry
// and returns its first "output_text" content. Missing text yields "".
func extractResponsesText(body []byte) string {
	var resp responsesEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	for _, out := range resp.Output {
		if out.Type != "message" {
			continue
		}
		for _, c := range out.Content {
			if c.Type == "output_text" {
				return c.Text
			}
		}
	}
	return ""
}
