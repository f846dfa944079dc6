package analyzer

import "strings"

// StripCodeFence removes a leading ```json or ``` marker and a trailing ```
// from the raw model output. Models wrap JSON in fences despite instructions
// not to; anything else is left untouched for the normalizer to handle.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && isFenceLanguage(s[:idx]) {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isFenceLanguage(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "json" || s == "JSON"
}
