package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrJSON produces the standard failure payload.
func ErrJSON(msg string) map[string]any {
	return map[string]any{
		"error":  msg,
		"status": "error",
	}
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// LimitStr returns s truncated to n runes with "..." appended if longer.
func LimitStr(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return Truncate(s, n) + "..."
}

// Head returns the first n elements of s.
func Head[S ~[]E, E any](s S, n int) S {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// CleanJSON strips reasoning blocks and markdown code fences around a model response.
func CleanJSON(s string) string {
	if strings.Contains(s, "<think>") {
		if idx := strings.LastIndex(s, "</think>"); idx != -1 {
			s = s[idx+len("</think>"):]
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		if len(lines) >= 2 {
			// Remove first line (```json) and last line (```)
			if strings.HasPrefix(lines[0], "```") {
				lines = lines[1:]
			}
			if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
				lines = lines[:len(lines)-1]
			}
			s = strings.Join(lines, "\n")
		}
	}
	return strings.TrimSpace(s)
}

var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON parses a model response that must consist of exactly one JSON
// value once CleanJSON has been applied. Prose around the value is an error.
func DecodeJSON[T any](s string) (T, error) {
	var v T
	dec := json.NewDecoder(strings.NewReader(CleanJSON(s)))
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode model output: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, ErrTrailingData
	}
	return v, nil
}

// SanitizeFilename replaces path and drive separators with underscores.
func SanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, ".")
	if s == "" {
		return "upload"
	}
	return s
}
