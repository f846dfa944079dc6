package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docforensics/internal/analyzer"
	"docforensics/internal/cache"
	"docforensics/internal/config"
	"docforensics/internal/domain"
	"docforensics/internal/keys"
	"docforensics/internal/modelparams"
	"docforensics/internal/normalize"
	"docforensics/internal/port"
)

// AnalyzeRequest is the DTO for submitting a document image for forensic analysis.
type AnalyzeRequest struct {
	Provider    domain.Provider
	Model       string
	FileBytes   []byte
	ContentType string
	ContextNote string
	APIKey      string // optional per-request credential, overrides stored/configured keys

	// Optional generation overrides. Nil fields fall back to family defaults.
	Temperature      *float64
	TopP             *float64
	MaxTokens        *int
	FrequencyPenalty *float64
	PresencePenalty  *float64
	ReasoningEffort  string
	ResponseFormat   string
}

// AnalyzerFactory builds a DocumentAnalyzer for a provider. It exists so
// tests can substitute fakes for the registered provider clients.
type AnalyzerFactory func(provider domain.Provider, opts analyzer.Options) (port.DocumentAnalyzer, error)

// AnalysisService defines the forensic analysis contract.
type AnalysisService interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*domain.Analysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type analysisService struct {
	repo        port.AnalysisRepository
	creds       port.CredentialStore
	storage     port.ObjectStorage
	results     port.ResultCache
	cfg         *config.Config
	newAnalyzer AnalyzerFactory
}

// NewAnalysisService creates a new AnalysisService. storage and results may
// be nil when S3 or redis is not configured; archival and caching are then
// skipped.
func NewAnalysisService(
	repo port.AnalysisRepository,
	creds port.CredentialStore,
	storage port.ObjectStorage,
	results port.ResultCache,
	cfg *config.Config,
) AnalysisService {
	return &analysisService{
		repo:        repo,
		creds:       creds,
		storage:     storage,
		results:     results,
		cfg:         cfg,
		newAnalyzer: analyzer.New,
	}
}

// NewAnalysisServiceWithFactory is NewAnalysisService with a custom analyzer
// factory, used by tests.
func NewAnalysisServiceWithFactory(
	repo port.AnalysisRepository,
	creds port.CredentialStore,
	storage port.ObjectStorage,
	results port.ResultCache,
	cfg *config.Config,
	factory AnalyzerFactory,
) AnalysisService {
	s := NewAnalysisService(repo, creds, storage, results, cfg).(*analysisService)
	s.newAnalyzer = factory
	return s
}

func (s *analysisService) Analyze(ctx context.Context, req *AnalyzeRequest) (*domain.Analysis, error) {
	if err := s.validateFile(req); err != nil {
		return nil, err
	}

	pc := s.cfg.Providers.For(req.Provider)
	if pc == nil {
		return nil, domain.ErrUnsupportedProvider
	}

	model := req.Model
	if model == "" {
		model = pc.DefaultModel
	}
	family := modelparams.Classify(model)

	params, err := s.buildParams(family, req)
	if err != nil {
		return nil, err
	}

	resolution, err := s.resolveCredential(ctx, req.Provider, req.APIKey, pc)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(req.FileBytes)
	imageDigest := hex.EncodeToString(digest[:])

	// The cache key is fixed before dispatch. Azure reports the deployment
	// name as the model used; keying writes on that would make every entry
	// unreachable for the next lookup.
	cacheKey := cache.ResultKey(imageDigest, req.Provider, model)

	result := s.cachedResult(ctx, cacheKey)
	if result == nil {
		client, err := s.newAnalyzer(req.Provider, analyzer.Options{
			Credential: resolution.Credential,
			Model:      model,
			Deployment: pc.Deployment,
			Endpoint:   pc.Endpoint,
			APIVersion: pc.APIVersion,
			Timeout:    pc.Timeout(),
		})
		if err != nil {
			return nil, err
		}

		output, err := client.Analyze(ctx, port.AnalyzeInput{
			FileBytes:   req.FileBytes,
			ContentType: req.ContentType,
			UserContext: req.ContextNote,
			Params:      params,
		})
		if err != nil {
			return nil, err
		}
		if output.ModelUsed != "" {
			model = output.ModelUsed
		}
		result = normalize.Normalize(output.RawText)
	}

	imageKey := fmt.Sprintf("images/%s%s", imageDigest, extensionFor(req.ContentType))
	rec := &domain.Analysis{
		ID:                uuid.New(),
		Provider:          req.Provider,
		Model:             model,
		ImageKey:          imageKey,
		ContextNote:       req.ContextNote,
		Result:            *result,
		CreatedAt:         time.Now().UTC(),
		CredentialWarning: resolution.Warning,
	}

	s.archiveImage(ctx, imageKey, req.FileBytes, req.ContentType)
	if err := s.repo.Create(ctx, rec); err != nil {
		zap.L().Error("analysisService.Analyze: failed to persist analysis",
			zap.String("analysis_id", rec.ID.String()), zap.Error(err))
	}
	s.cacheResult(ctx, cacheKey, result)

	return rec, nil
}

func (s *analysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, offset, limit int) ([]domain.Analysis, int, error) {
	analyses, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return analyses, total, nil
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.storage != nil {
		if err := s.storage.Delete(ctx, s.cfg.S3.Bucket, rec.ImageKey); err != nil {
			zap.L().Warn("analysisService.Delete: failed to delete archived image",
				zap.String("image_key", rec.ImageKey), zap.Error(err))
		}
	}
	return nil
}

func (s *analysisService) validateFile(req *AnalyzeRequest) error {
	if len(req.FileBytes) == 0 {
		return domain.ErrEmptyFile
	}
	if max := s.cfg.Limits.MaxFileBytes(); int64(len(req.FileBytes)) > max {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrFileTooLarge, max)
	}
	if _, ok := domain.AllowedContentTypes[req.ContentType]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, req.ContentType)
	}
	return nil
}

// buildParams merges request overrides onto the family defaults and
// validates the merged set. Validation is the only rejection point for
// generation parameters.
func (s *analysisService) buildParams(family modelparams.Family, req *AnalyzeRequest) (modelparams.Generation, error) {
	params := modelparams.Defaults(family)

	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		params.TopP = *req.TopP
	}
	if req.MaxTokens != nil {
		params.MaxTokens = *req.MaxTokens
	}
	if req.FrequencyPenalty != nil {
		params.FrequencyPenalty = *req.FrequencyPenalty
	}
	if req.PresencePenalty != nil {
		params.PresencePenalty = *req.PresencePenalty
	}
	if req.ReasoningEffort != "" {
		params.ReasoningEffort = modelparams.Effort(req.ReasoningEffort)
	}
	if req.ResponseFormat != "" {
		params.ResponseFormat = modelparams.ResponseFormat(req.ResponseFormat)
	}

	if err := modelparams.Validate(family, params); err != nil {
		return modelparams.Generation{}, err
	}
	return params, nil
}

// resolveCredential picks the credential for a request: a well-formed
// request key wins, then the stored per-provider key, then the deployment
// default from config. A malformed request key falls back with a warning
// rather than failing the analysis.
func (s *analysisService) resolveCredential(ctx context.Context, provider domain.Provider, requestKey string, pc *config.ProviderConfig) (keys.Resolution, error) {
	fallback := pc.APIKey
	if s.creds != nil {
		stored, found, err := s.creds.Get(ctx, provider)
		if err != nil {
			zap.L().Warn("analysisService.resolveCredential: credential store lookup failed",
				zap.String("provider", string(provider)), zap.Error(err))
		} else if found {
			fallback = stored
		}
	}

	resolution, ok := keys.Resolve(provider, requestKey, fallback)
	if !ok {
		return keys.Resolution{}, domain.ErrMissingCredential
	}
	return resolution, nil
}

func (s *analysisService) cachedResult(ctx context.Context, key string) *domain.AnalysisResult {
	if s.results == nil {
		return nil
	}
	result, found, err := s.results.GetResult(ctx, key)
	if err != nil {
		zap.L().Warn("analysisService.cachedResult: cache lookup failed", zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	zap.L().Info("analysisService.cachedResult: serving cached result", zap.String("key", key))
	return result
}

func (s *analysisService) cacheResult(ctx context.Context, key string, result *domain.AnalysisResult) {
	if s.results == nil {
		return
	}
	if err := s.results.SetResult(ctx, key, result, s.cfg.Redis.TTL()); err != nil {
		zap.L().Warn("analysisService.cacheResult: failed to cache result", zap.Error(err))
	}
}

func (s *analysisService) archiveImage(ctx context.Context, key string, data []byte, contentType string) {
	if s.storage == nil {
		return
	}
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
	})
	if err != nil {
		zap.L().Warn("analysisService.archiveImage: failed to archive image",
			zap.String("image_key", key), zap.Error(err))
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ""
}
