package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docforensics/internal/analyzer"
	"docforensics/internal/config"
	"docforensics/internal/domain"
	"docforensics/internal/port"
	"docforensics/internal/service"
	"docforensics/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Limits: config.LimitsConfig{MaxFileSizeMB: 1},
		Redis:  config.RedisConfig{TTLHours: 1},
		S3:     config.S3Config{Bucket: "forensics-archive"},
		Providers: config.ProvidersConfig{
			Google: config.ProviderConfig{APIKey: "deployment-google-key", DefaultModel: "gemini-2.5-flash"},
			OpenAI: config.ProviderConfig{DefaultModel: "gpt-4o"},
		},
	}
}

func fixedFactory(a port.DocumentAnalyzer, err error) service.AnalyzerFactory {
	return func(provider domain.Provider, opts analyzer.Options) (port.DocumentAnalyzer, error) {
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}

func validRequest() *service.AnalyzeRequest {
	return &service.AnalyzeRequest{
		Provider:    domain.ProviderGoogle,
		FileBytes:   []byte{0xFF, 0xD8, 0xFF},
		ContentType: "image/jpeg",
	}
}

func TestAnalyze_Success(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	analyzerMock := new(mocks.MockDocumentAnalyzer)

	creds.On("Get", mock.Anything, domain.ProviderGoogle).Return("", false, nil)
	analyzerMock.On("Analyze", mock.Anything, mock.Anything).Return(&port.AnalyzeOutput{
		RawText:   `{"overallAssessment":"LIKELY_AUTHENTIC","confidenceScore":0.9}`,
		ModelUsed: "gemini-2.5-flash",
	}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := service.NewAnalysisServiceWithFactory(repo, creds, nil, nil, testConfig(), fixedFactory(analyzerMock, nil))

	analysis, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderGoogle, analysis.Provider)
	assert.Equal(t, "gemini-2.5-flash", analysis.Model)
	assert.Equal(t, domain.AssessmentLikelyAuthentic, analysis.Result.OverallAssessment)
	assert.NotEmpty(t, analysis.ImageKey)
	assert.Empty(t, analysis.CredentialWarning)
	repo.AssertExpectations(t)
	analyzerMock.AssertExpectations(t)
}

func TestAnalyze_EmptyFile(t *testing.T) {
	svc := service.NewAnalysisService(new(mocks.MockAnalysisRepository), nil, nil, nil, testConfig())

	req := validRequest()
	req.FileBytes = nil
	_, err := svc.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestAnalyze_FileTooLarge(t *testing.T) {
	svc := service.NewAnalysisService(new(mocks.MockAnalysisRepository), nil, nil, nil, testConfig())

	req := validRequest()
	req.FileBytes = bytes.Repeat([]byte{0xFF}, 1024*1024+1)
	_, err := svc.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestAnalyze_UnsupportedContentType(t *testing.T) {
	svc := service.NewAnalysisService(new(mocks.MockAnalysisRepository), nil, nil, nil, testConfig())

	req := validRequest()
	req.ContentType = "application/pdf"
	_, err := svc.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestAnalyze_UnknownProvider(t *testing.T) {
	svc := service.NewAnalysisService(new(mocks.MockAnalysisRepository), nil, nil, nil, testConfig())

	req := validRequest()
	req.Provider = domain.Provider("fax-machine")
	_, err := svc.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestAnalyze_InvalidParameters(t *testing.T) {
	svc := service.NewAnalysisService(new(mocks.MockAnalysisRepository), nil, nil, nil, testConfig())

	req := validRequest()
	temp := 5.0
	req.Temperature = &temp
	_, err := svc.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)
}

func TestAnalyze_MissingCredential(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	creds.On("Get", mock.Anything, domain.ProviderOpenAI).Return("", false, nil)

	svc := service.NewAnalysisService(repo, creds, nil, nil, testConfig())

	req := validRequest()
	req.Provider = domain.ProviderOpenAI // no config key, no stored key
	_, err := svc.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestAnalyze_StoredCredentialBeatsConfig(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	analyzerMock := new(mocks.MockDocumentAnalyzer)

	creds.On("Get", mock.Anything, domain.ProviderGoogle).Return("stored-key", true, nil)
	analyzerMock.On("Analyze", mock.Anything, mock.Anything).Return(&port.AnalyzeOutput{RawText: "{}"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	var seenCredential string
	factory := func(provider domain.Provider, opts analyzer.Options) (port.DocumentAnalyzer, error) {
		seenCredential = opts.Credential
		return analyzerMock, nil
	}
	svc := service.NewAnalysisServiceWithFactory(repo, creds, nil, nil, testConfig(), factory)

	_, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "stored-key", seenCredential)
}

func TestAnalyze_MalformedUserKeyFallsBackWithWarning(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	analyzerMock := new(mocks.MockDocumentAnalyzer)

	creds.On("Get", mock.Anything, domain.ProviderGoogle).Return("", false, nil)
	analyzerMock.On("Analyze", mock.Anything, mock.Anything).Return(&port.AnalyzeOutput{RawText: "{}"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	var seenCredential string
	factory := func(provider domain.Provider, opts analyzer.Options) (port.DocumentAnalyzer, error) {
		seenCredential = opts.Credential
		return analyzerMock, nil
	}
	svc := service.NewAnalysisServiceWithFactory(repo, creds, nil, nil, testConfig(), factory)

	req := validRequest()
	req.APIKey = "definitely-not-a-google-key"
	analysis, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "deployment-google-key", seenCredential)
	assert.NotEmpty(t, analysis.CredentialWarning)
}

func TestAnalyze_CacheHitSkipsProvider(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	results := new(mocks.MockResultCache)

	cached := &domain.AnalysisResult{
		OverallAssessment: domain.AssessmentSuspicious,
		ConfidenceScore:   0.6,
		PromptVersion:     domain.PromptVersion,
	}
	creds.On("Get", mock.Anything, domain.ProviderGoogle).Return("", false, nil)
	results.On("GetResult", mock.Anything, mock.Anything).Return(cached, true, nil)
	results.On("SetResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	factory := func(provider domain.Provider, opts analyzer.Options) (port.DocumentAnalyzer, error) {
		t.Fatal("provider must not be called on a cache hit")
		return nil, nil
	}
	svc := service.NewAnalysisServiceWithFactory(repo, creds, nil, results, testConfig(), factory)

	analysis, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.AssessmentSuspicious, analysis.Result.OverallAssessment)
}

func TestAnalyze_CacheKeyIgnoresDeploymentAlias(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	results := new(mocks.MockResultCache)
	analyzerMock := new(mocks.MockDocumentAnalyzer)

	cfg := testConfig()
	cfg.Providers.Azure = config.ProviderConfig{
		APIKey:       "0123456789abcdef0123456789abcdef",
		DefaultModel: "gpt-4o",
		Deployment:   "prod-gpt4o",
		Endpoint:     "https://example.openai.azure.com",
	}

	creds.On("Get", mock.Anything, domain.ProviderAzure).Return("", false, nil)
	// Azure reports the deployment name as the model it used.
	analyzerMock.On("Analyze", mock.Anything, mock.Anything).Return(&port.AnalyzeOutput{
		RawText:   "{}",
		ModelUsed: "prod-gpt4o",
	}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	var readKey, writeKey string
	results.On("GetResult", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { readKey = args.String(1) }).
		Return(nil, false, nil)
	results.On("SetResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { writeKey = args.String(1) }).
		Return(nil)

	svc := service.NewAnalysisServiceWithFactory(repo, creds, nil, results, cfg, fixedFactory(analyzerMock, nil))

	req := validRequest()
	req.Provider = domain.ProviderAzure
	analysis, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	// The stored entry must be reachable by the next identical request.
	assert.Equal(t, readKey, writeKey)
	assert.Contains(t, writeKey, "gpt-4o")
	assert.NotContains(t, writeKey, "prod-gpt4o")
	assert.Equal(t, "prod-gpt4o", analysis.Model)
}

func TestAnalyze_ProviderErrorPropagates(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	analyzerMock := new(mocks.MockDocumentAnalyzer)

	provErr := analyzer.NewProviderError("gemini", 429, []byte("quota"), 10)
	creds.On("Get", mock.Anything, domain.ProviderGoogle).Return("", false, nil)
	analyzerMock.On("Analyze", mock.Anything, mock.Anything).Return(nil, provErr)

	svc := service.NewAnalysisServiceWithFactory(repo, creds, nil, nil, testConfig(), fixedFactory(analyzerMock, nil))

	_, err := svc.Analyze(context.Background(), validRequest())
	var got *analyzer.ProviderError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 429, got.StatusCode)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalyze_PersistFailureDoesNotFailRequest(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	analyzerMock := new(mocks.MockDocumentAnalyzer)

	creds.On("Get", mock.Anything, domain.ProviderGoogle).Return("", false, nil)
	analyzerMock.On("Analyze", mock.Anything, mock.Anything).Return(&port.AnalyzeOutput{RawText: "{}"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := service.NewAnalysisServiceWithFactory(repo, creds, nil, nil, testConfig(), fixedFactory(analyzerMock, nil))

	analysis, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, analysis)
}

func TestAnalyze_ArchivesImage(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	creds := new(mocks.MockCredentialStore)
	storage := new(mocks.MockObjectStorage)
	analyzerMock := new(mocks.MockDocumentAnalyzer)

	creds.On("Get", mock.Anything, domain.ProviderGoogle).Return("", false, nil)
	analyzerMock.On("Analyze", mock.Anything, mock.Anything).Return(&port.AnalyzeOutput{RawText: "{}"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(input port.UploadInput) bool {
		return input.Bucket == "forensics-archive" && input.ContentType == "image/jpeg"
	})).Return(&port.UploadOutput{Location: "s3://x"}, nil)

	svc := service.NewAnalysisServiceWithFactory(repo, creds, storage, nil, testConfig(), fixedFactory(analyzerMock, nil))

	_, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestDelete_RemovesRecordAndImage(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	storage := new(mocks.MockObjectStorage)

	id := uuid.New()
	rec := &domain.Analysis{ID: id, ImageKey: "images/abc.jpg"}
	repo.On("GetByID", mock.Anything, id).Return(rec, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)
	storage.On("Delete", mock.Anything, "forensics-archive", "images/abc.jpg").Return(nil)

	svc := service.NewAnalysisService(repo, nil, storage, nil, testConfig())

	require.NoError(t, svc.Delete(context.Background(), id))
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	svc := service.NewAnalysisService(repo, nil, nil, nil, testConfig())
	assert.ErrorIs(t, svc.Delete(context.Background(), id), domain.ErrNotFound)
}

func TestList_ReturnsTotal(t *testing.T) {
	repo := new(mocks.MockAnalysisRepository)
	repo.On("List", mock.Anything, 20, 0).Return([]domain.Analysis{{}, {}}, nil)
	repo.On("Count", mock.Anything).Return(42, nil)

	svc := service.NewAnalysisService(repo, nil, nil, nil, testConfig())

	analyses, total, err := svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Len(t, analyses, 2)
	assert.Equal(t, 42, total)
}
