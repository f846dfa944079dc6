package openai

import (
	"bytes"
	"context"
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
	apiURL       = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o"
)

func init() {
	analyzer.Register(domain.ProviderOpenAI, func(opts analyzer.Options) (port.DocumentAnalyzer, error) {
		return NewAnalyzer(opts), nil
	})
}

// Analyzer implements port.DocumentAnalyzer using the OpenAI Chat Completions
// API.
type Analyzer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewAnalyzer creates an OpenAI-backed analyzer. Options.Endpoint overrides
// the public API endpoint (for testing).
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
		endpoint = apiURL
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

	// All families go through chat completions here; reasoning models get
	// their own field set from ChatFields. Only the Azure client routes
	// reasoning models to the /responses endpoint.
	family := modelparams.Classify(a.model)

	reqBody := map[string]interface{}{
		"model":    a.model,
		"messages": buildMessages(input, prompt),
	}
	for k, v := range modelparams.ChatFields(family, input.Params) {
		reqBody[k] = v
	}
	if family == modelparams.FamilyStandard {
		reqBody["response_format"] = map[string]interface{}{"type": "json_object"}
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
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &analyzer.NetworkError{Provider: "openai", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryAfter := analyzer.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, analyzer.NewProviderError("openai", resp.StatusCode, respBody, retryAfter)
	}

	return &port.AnalyzeOutput{
		RawText:    analyzer.StripCodeFence(ExtractChatText(respBody)),
		ModelUsed:  a.model,
		PromptUsed: prompt,
	}, nil
}

// buildMessages assembles the chat-style shape: the full instruction prompt as
// the system message, then a user message with one image part and one text
// part.
func buildMessages(input port.AnalyzeInput, prompt string) []map[string]interface{} {
	return []map[string]interface{}{
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
	}
}

// chatResponse models the Chat Completions response envelope.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ExtractChatText returns the first choice's message content, or "" when the
// envelope is malformed or empty. Shared with the Azure and bedrock clients.
func ExtractChatText(body []byte) string {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
