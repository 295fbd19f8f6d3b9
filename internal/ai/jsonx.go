package ai

import (
	"encoding/json"
	"strings"
)

// StripFences removes a surrounding Markdown code fence, which models add even
// when asked not to.
func StripFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}

	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")

	return strings.TrimSpace(t)
}

// DecodeJSON parses a model answer into v after stripping code fences.
func DecodeJSON(text string, v interface{}) error {
	return json.Unmarshal([]byte(StripFences(text)), v)
}
