// Package textutil provides tokenization for whitespace-separated corpora.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// Tokenize splits a corpus line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// TokenizeLower splits a line on whitespace and lowercases every token.
func TokenizeLower(line string) []string {
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return tokens
}

// TrimBOM strips a leading UTF-8 byte order mark.
func TrimBOM(line string) string {
	if r, size := utf8.DecodeRuneInString(line); r == '\uFEFF' {
		return line[size:]
	}
	return line
}
