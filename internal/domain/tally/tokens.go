// Package tally provides the counting primitives behind every page:
// tokenizing multi-valued fields, frequency counts with a stable order,
// and zero-filled cross-tabulations.
package tally

import "strings"

// Separator between values of a multi-valued field (cast, country, listed_in).
const Separator = ","

// Tokens splits a multi-valued field on commas, trims surrounding whitespace
// from each token and drops empty tokens. It is the only tokenizer used for
// cast, country and listed_in.
func Tokens(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, Separator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FirstToken returns the first token of a multi-valued field.
func FirstToken(s string) (string, bool) {
	toks := Tokens(s)
	if len(toks) == 0 {
		return "", false
	}
	return toks[0], true
}
