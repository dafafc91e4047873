// Package utils contains general helper functions used across ctxprompt.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	pathSegmentSeparator = "/"
	extensionSeparator   = "."
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept. Blank entries are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == EmptyString {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// JoinRelativePath appends name to a slash-separated relative directory path.
func JoinRelativePath(relativeDirectory, name string) string {
	if relativeDirectory == EmptyString || relativeDirectory == "." {
		return name
	}
	return relativeDirectory + pathSegmentSeparator + name
}

// FileExtension returns the extension of a file name, lower-cased, including the dot.
// Leading dots are not treated as an extension separator, so ".gitignore" has no extension.
func FileExtension(fileName string) string {
	trimmedName := strings.TrimLeft(fileName, extensionSeparator)
	return strings.ToLower(filepath.Ext(trimmedName))
}

// NormalizeExtension lower-cases an extension and ensures it starts with a dot.
func NormalizeExtension(extension string) string {
	normalized := strings.ToLower(strings.TrimSpace(extension))
	if normalized == EmptyString {
		return EmptyString
	}
	if !strings.HasPrefix(normalized, extensionSeparator) {
		normalized = extensionSeparator + normalized
	}
	return normalized
}
