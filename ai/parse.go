package ai

import (
	"encoding/json"
	"strings"
)

// StripCodeFence removes a markdown ```json / ``` wrapper the model
// sometimes adds around structured output.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// decodeJSON parses model output into T after stripping any code fence.
func decodeJSON[T any](text string) (*T, error) {
	var out T
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DedupeSources drops repeated URIs, keeping first-seen order.
func DedupeSources(sources []Source) []Source {
	seen := make(map[string]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if seen[s.URI] {
			continue
		}
		seen[s.URI] = true
		out = append(out, s)
	}
	return out
}
