// Package keys decides which credential is effective for a provider and
// validates credential shapes. It never persists anything; storage lives
// behind port.CredentialStore.
package keys

import (
	"net/url"
	"strings"

	"docforensics/internal/domain"
)

const (
	googleKeyPrefix = "AIza"
	googleKeyLength = 39

	openaiKeyPrefix     = "sk-"
	openaiProjKeyPrefix = "sk-proj-"
	openaiKeyMinLength  = 20

	azureKeyLength = 32
)

// Resolution is the outcome of credential resolution for one provider.
type Resolution struct {
	Credential string
	FromUser   bool
	// Warning is set when a user-supplied key was present but malformed and
	// the deployment default (if any) was used instead.
	Warning string
}

// WellFormed reports whether key matches the expected shape for the provider.
// The checks are recognizable-shape heuristics, not exhaustive validation.
func WellFormed(provider domain.Provider, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	switch provider {
	case domain.ProviderGoogle:
		return strings.HasPrefix(key, googleKeyPrefix) && len(key) == googleKeyLength
	case domain.ProviderOpenAI:
		return (strings.HasPrefix(key, openaiProjKeyPrefix) || strings.HasPrefix(key, openaiKeyPrefix)) &&
			len(key) >= openaiKeyMinLength
	case domain.ProviderAzure:
		return isHex(key) && len(key) == azureKeyLength
	case domain.ProviderBedrock:
		// Bedrock "keys" are proxy URLs, not secrets.
		u, err := url.Parse(key)
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	default:
		return false
	}
}

// Resolve picks the effective credential for a provider. A present, well-formed
// user key wins; a malformed user key falls back to the deployment default with
// a warning; absent both yields ok=false.
func Resolve(provider domain.Provider, userSupplied, deploymentDefault string) (Resolution, bool) {
	userSupplied = strings.TrimSpace(userSupplied)
	deploymentDefault = strings.TrimSpace(deploymentDefault)

	if userSupplied != "" {
		if WellFormed(provider, userSupplied) {
			return Resolution{Credential: userSupplied, FromUser: true}, true
		}
		if deploymentDefault != "" {
			return Resolution{
				Credential: deploymentDefault,
				Warning:    malformedWarning(provider),
			}, true
		}
		return Resolution{Warning: malformedWarning(provider)}, false
	}

	if deploymentDefault != "" {
		return Resolution{Credential: deploymentDefault}, true
	}
	return Resolution{}, false
}

func malformedWarning(provider domain.Provider) string {
	if provider == domain.ProviderBedrock {
		return "supplied proxy URL is not a valid http(s) URL; using deployment default if configured"
	}
	return "supplied API key does not match the expected " + string(provider) + " key format; using deployment default if configured"
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return len(s) > 0
}
