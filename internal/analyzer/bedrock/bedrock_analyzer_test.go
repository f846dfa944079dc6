package bedrock_test

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
	"docforensics/internal/analyzer/bedrock"
	"docforensics/internal/modelparams"
	"docforensics/internal/port"
)

func analyzeInput() port.AnalyzeInput {
	return port.AnalyzeInput{
		FileBytes:   []byte{0x52, 0x49, 0x46, 0x46},
		ContentType: "image/webp",
		Params:      modelparams.Defaults(modelparams.FamilyStandard),
	}
}

func TestNewAnalyzer_RequiresProxyURL(t *testing.T) {
	_, err := bedrock.NewAnalyzer(analyzer.Options{Model: "gpt-4o"})
	assert.Error(t, err)
}

func TestAnalyze_RawBodyIsAnalysisText(t *testing.T) {
	llmJSON := `{"overallAssessment":"LIKELY_AUTHENTIC","confidenceScore":0.88}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The proxy handles upstream auth; no credential headers are sent.
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("api-key"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4o", reqBody["model"])
		assert.Equal(t, float64(8192), reqBody["max_tokens"])
		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)

		// The proxy returns the analysis text directly, with no chat envelope.
		_, _ = w.Write([]byte(llmJSON))
	}))
	defer server.Close()

	a, err := bedrock.NewAnalyzer(analyzer.Options{Credential: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	output, err := a.Analyze(context.Background(), analyzeInput())
	require.NoError(t, err)
	assert.Equal(t, llmJSON, output.RawText)
	assert.Equal(t, "gpt-4o", output.ModelUsed)
}

func TestAnalyze_EndpointOverridesCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	a, err := bedrock.NewAnalyzer(analyzer.Options{
		Credential: "http://127.0.0.1:1",
		Endpoint:   server.URL,
		Model:      "gpt-4o",
	})
	require.NoError(t, err)

	_, err = a.Analyze(context.Background(), analyzeInput())
	require.NoError(t, err)
}

func TestAnalyze_StripsFenceFromRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("```json\n{\"confidenceScore\":0.5}\n```"))
	}))
	defer server.Close()

	a, err := bedrock.NewAnalyzer(analyzer.Options{Credential: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	output, err := a.Analyze(context.Background(), analyzeInput())
	require.NoError(t, err)
	assert.Equal(t, `{"confidenceScore":0.5}`, output.RawText)
}

func TestAnalyze_ProxyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	a, err := bedrock.NewAnalyzer(analyzer.Options{Credential: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	_, err = a.Analyze(context.Background(), analyzeInput())
	var provErr *analyzer.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
}
