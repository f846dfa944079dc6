package google_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforensics/internal/analyzer"
	"docforensics/internal/analyzer/google"
	"docforensics/internal/modelparams"
	"docforensics/internal/port"
)

func newTestAnalyzer(serverURL string) *google.Analyzer {
	return google.NewAnalyzer(analyzer.Options{
		Credential: "test-gemini-key",
		Model:      "gemini-2.5-flash",
		Endpoint:   serverURL,
	})
}

func geminiSuccessResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func analyzeInput() port.AnalyzeInput {
	return port.AnalyzeInput{
		FileBytes:   []byte{0xFF, 0xD8, 0xFF, 0xE0},
		ContentType: "image/jpeg",
		Params:      modelparams.Defaults(modelparams.FamilyStandard),
	}
}

func TestAnalyze_Success(t *testing.T) {
	llmJSON := `{"overallAssessment":"LIKELY_AUTHENTIC","confidenceScore":0.9}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		require.Len(t, parts, 2)

		dataPart := parts[0].(map[string]interface{})
		inlineData := dataPart["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inlineData["mime_type"])
		assert.NotEmpty(t, inlineData["data"])

		textPart := parts[1].(map[string]interface{})
		assert.Contains(t, textPart["text"], "forensic")

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genConfig["responseMimeType"])
		assert.Equal(t, float64(8192), genConfig["maxOutputTokens"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(geminiSuccessResponse(llmJSON))
	}))
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	output, err := a.Analyze(context.Background(), analyzeInput())

	require.NoError(t, err)
	assert.Equal(t, llmJSON, output.RawText)
	assert.Equal(t, "gemini-2.5-flash", output.ModelUsed)
	assert.NotEmpty(t, output.PromptUsed)
}

func TestAnalyze_StripsCodeFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiSuccessResponse("```json\n{\"confidenceScore\":0.8}\n```"))
	}))
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	output, err := a.Analyze(context.Background(), analyzeInput())

	require.NoError(t, err)
	assert.Equal(t, `{"confidenceScore":0.8}`, output.RawText)
}

func TestAnalyze_EmptyEnvelopeYieldsEmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	output, err := a.Analyze(context.Background(), analyzeInput())

	require.NoError(t, err)
	assert.Empty(t, output.RawText)
}

func TestAnalyze_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	_, err := a.Analyze(context.Background(), analyzeInput())

	var provErr *analyzer.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, 15, int(provErr.RetryAfter.Seconds()))
}

func TestAnalyze_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	_, err := a.Analyze(context.Background(), analyzeInput())

	var provErr *analyzer.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
	assert.Zero(t, provErr.RetryAfter)
}

func TestAnalyze_NetworkError(t *testing.T) {
	a := newTestAnalyzer("http://127.0.0.1:1")
	_, err := a.Analyze(context.Background(), analyzeInput())

	var netErr *analyzer.NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestAnalyze_RejectsUnsupportedContentType(t *testing.T) {
	a := newTestAnalyzer("http://unused")
	input := analyzeInput()
	input.ContentType = "application/pdf"

	_, err := a.Analyze(context.Background(), input)
	assert.Error(t, err)
}
