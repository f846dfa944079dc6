package bedrock

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

func init() {
	analyzer.Register(domain.ProviderBedrock, func(opts analyzer.Options) (port.DocumentAnalyzer, error) {
		return NewAnalyzer(opts)
	})
}

// Analyzer implements port.DocumentAnalyzer by forwarding a chat-style payload
// to a configured proxy. There is no provider SDK: the proxy's raw response
// body is the analysis text itself, no envelope unwrapping needed.
type Analyzer struct {
	proxyURL string
	model    string
	client   *http.Client
}

// NewAnalyzer creates a proxy-backed analyzer. The resolved credential is the
// proxy URL; Options.Endpoint overrides it (for testing).
func NewAnalyzer(opts analyzer.Options) (*Analyzer, error) {
	proxyURL := opts.Endpoint
	if proxyURL == "" {
		proxyURL = opts.Credential
	}
	if proxyURL == "" {
		return nil, fmt.Errorf("bedrock: proxy URL is required")
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Analyzer{
		proxyURL: proxyURL,
		model:    opts.Model,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (a *Analyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	if err := analyzer.CheckContentType(input.ContentType); err != nil {
		return nil, err
	}

	prompt := analyzer.BuildForensicPrompt(input.UserContext)
	family := modelparams.Classify(a.model)

	reqBody := map[string]interface{}{
		"model": a.model,
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
		reqBody[k] = v
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.proxyURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &analyzer.NetworkError{Provider: "bedrock", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryAfter := analyzer.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, analyzer.NewProviderError("bedrock", resp.StatusCode, respBody, retryAfter)
	}

	return &port.AnalyzeOutput{
		RawText:    analyzer.StripCodeFence(string(respBody)),
		ModelUsed:  a.model,
		PromptUsed: prompt,
	}, nil
}
