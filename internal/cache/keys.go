package cache

import (
	"fmt"

	"docforensics/internal/domain"
)

// ResultKey keys a normalized result by image digest, provider, and model.
func ResultKey(imageDigest string, provider domain.Provider, model string) string {
	return fmt.Sprintf("analysis:result:%s:%s:%s", provider, model, imageDigest)
}
