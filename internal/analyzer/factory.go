// Package analyzer holds the provider-neutral pieces of forensic dispatch:
// the provider registry, typed errors, the instruction template, and raw-text
// cleanup shared by all provider implementations.
package analyzer

import (
	"fmt"
	"time"

	"docforensics/internal/domain"
	"docforensics/internal/port"
)

// Options configures one provider analyzer instance.
type Options struct {
	// Credential is the resolved API key, or the proxy URL for bedrock.
	Credential string
	Model      string
	// Deployment is the Azure deployment name; unused elsewhere.
	Deployment string
	// Endpoint overrides the provider base URL (Azure resource URL, test
	// servers). Empty means the provider's public endpoint.
	Endpoint   string
	APIVersion string
	Timeout    time.Duration
}

// Factory builds a DocumentAnalyzer for one provider.
type Factory func(opts Options) (port.DocumentAnalyzer, error)

// registry of analyzer factories, populated by init() in each provider package.
var providers = map[domain.Provider]Factory{}

// Register registers an analyzer factory for a provider.
func Register(p domain.Provider, factory Factory) {
	providers[p] = factory
}

// New creates a DocumentAnalyzer for the given provider using the registered
// factory.
func New(p domain.Provider, opts Options) (port.DocumentAnalyzer, error) {
	factory, ok := providers[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, p)
	}
	return factory(opts)
}
