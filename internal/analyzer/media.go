package analyzer

import (
	"encoding/base64"
	"fmt"

	"docforensics/internal/domain"
)

// DataURL encodes image bytes as a base64 data URL for providers that take
// inline images over raw HTTP.
func DataURL(contentType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// CheckContentType rejects content types outside the supported image set.
func CheckContentType(contentType string) error {
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, contentType)
	}
	return nil
}
