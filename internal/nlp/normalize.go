// Package nlp implements the assistant's intent classification and entity
// extraction. It is deliberately simple: substring matching over a curated
// French keyword table, additive scoring, and a handful of regexes. No ML,
// no learning — "intelligent enough" for a storefront assistant.
package nlp

import "strings"

// Normalize lowercases and trims the raw message and splits it into
// whitespace-delimited tokens. An empty message yields an empty token list.
func Normalize(raw string) (string, []string) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	return normalized, strings.Fields(normalized)
}
