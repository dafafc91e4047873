package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"

	"github.com/temirov/ctxprompt/internal/utils"
)

const (
	patternPathSeparator      = '/'
	directoryPatternSuffix    = "/"
	errorCompilePatternFormat = "compile ignore pattern %q: %w"
)

var (
	// defaultIgnoredDirectories are version-control, editor, dependency and build folders.
	defaultIgnoredDirectories = []string{
		"node_modules",
		"dist",
		utils.GitDirectoryName,
		".angular",
		".vscode",
		".idea",
		"coverage",
	}

	// defaultIgnoredFiles are lock files, OS metadata and ctxprompt's own files matched by exact name.
	defaultIgnoredFiles = []string{
		"package-lock.json",
		"yarn.lock",
		".DS_Store",
		"favicon.ico",
		utils.IgnoreFileName,
		utils.LocalConfigFileName,
	}

	// defaultIgnoredExtensions cover images, fonts, media, documents, executables and archives.
	defaultIgnoredExtensions = []string{
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
		".ttf", ".woff", ".woff2", ".eot", ".mp4", ".pdf",
		".exe", ".dll", ".so", ".dylib", ".class", ".jar",
	}
)

// IgnoreRules decides which directories and files are excluded from the prompt.
// A rule set is built once and only read afterwards.
type IgnoreRules struct {
	directories map[string]struct{}
	files       map[string]struct{}
	extensions  map[string]struct{}
	patterns    []ignorePattern
}

type ignorePattern struct {
	source        string
	directoryOnly bool
	matcher       glob.Glob
}

// DefaultIgnoreRules returns the built-in rule set without any configured additions.
func DefaultIgnoreRules() *IgnoreRules {
	return &IgnoreRules{
		directories: toSet(defaultIgnoredDirectories, strings.TrimSpace),
		files:       toSet(defaultIgnoredFiles, strings.TrimSpace),
		extensions:  toSet(defaultIgnoredExtensions, utils.NormalizeExtension),
	}
}

// NewIgnoreRules combines the defaults (unless disabled) with configured lists and additional glob patterns.
// Patterns use forward slashes, support "**" and are matched against both the relative path and the base name.
// A pattern ending in "/" only matches directories.
func NewIgnoreRules(configuration IgnoreConfiguration, additionalPatterns []string) (*IgnoreRules, error) {
	rules := &IgnoreRules{
		directories: map[string]struct{}{},
		files:       map[string]struct{}{},
		extensions:  map[string]struct{}{},
	}
	if configuration.UseDefaults == nil || *configuration.UseDefaults {
		rules = DefaultIgnoreRules()
	}
	addToSet(rules.directories, configuration.Directories, strings.TrimSpace)
	addToSet(rules.files, configuration.Files, strings.TrimSpace)
	addToSet(rules.extensions, configuration.Extensions, utils.NormalizeExtension)

	combinedPatterns := utils.DeduplicatePatterns(append(append([]string{}, configuration.Patterns...), additionalPatterns...))
	for _, patternValue := range combinedPatterns {
		compiledPattern, compileError := compileIgnorePattern(patternValue)
		if compileError != nil {
			return nil, compileError
		}
		rules.patterns = append(rules.patterns, compiledPattern)
	}
	return rules, nil
}

func compileIgnorePattern(patternValue string) (ignorePattern, error) {
	normalizedPattern := strings.ReplaceAll(patternValue, "\\", directoryPatternSuffix)
	directoryOnly := strings.HasSuffix(normalizedPattern, directoryPatternSuffix)
	trimmedPattern := strings.TrimSuffix(normalizedPattern, directoryPatternSuffix)
	matcher, compileError := glob.Compile(trimmedPattern, patternPathSeparator)
	if compileError != nil {
		return ignorePattern{}, fmt.Errorf(errorCompilePatternFormat, patternValue, compileError)
	}
	return ignorePattern{source: patternValue, directoryOnly: directoryOnly, matcher: matcher}, nil
}

// ShouldSkipDirectory reports whether the directory must not be listed or descended into.
func (rules *IgnoreRules) ShouldSkipDirectory(name string, relativePath string) bool {
	if rules == nil {
		return false
	}
	if _, ignored := rules.directories[name]; ignored {
		return true
	}
	return rules.matchesPattern(name, relativePath, true)
}

// ShouldSkipFile reports whether the file is excluded by exact name, extension or pattern.
func (rules *IgnoreRules) ShouldSkipFile(name string, relativePath string) bool {
	if rules == nil {
		return false
	}
	if _, ignored := rules.files[name]; ignored {
		return true
	}
	if extension := utils.FileExtension(name); extension != utils.EmptyString {
		if _, ignored := rules.extensions[extension]; ignored {
			return true
		}
	}
	return rules.matchesPattern(name, relativePath, false)
}

// Patterns returns the source text of the configured glob patterns.
func (rules *IgnoreRules) Patterns() []string {
	if rules == nil {
		return nil
	}
	sources := make([]string, 0, len(rules.patterns))
	for _, compiledPattern := range rules.patterns {
		sources = append(sources, compiledPattern.source)
	}
	return sources
}

func (rules *IgnoreRules) matchesPattern(name string, relativePath string, isDirectory bool) bool {
	cleanRelativePath := path.Clean(relativePath)
	for _, compiledPattern := range rules.patterns {
		if compiledPattern.directoryOnly && !isDirectory {
			continue
		}
		if compiledPattern.matcher.Match(cleanRelativePath) || compiledPattern.matcher.Match(name) {
			return true
		}
	}
	return false
}

func toSet(values []string, normalize func(string) string) map[string]struct{} {
	result := make(map[string]struct{}, len(values))
	addToSet(result, values, normalize)
	return result
}

func addToSet(target map[string]struct{}, values []string, normalize func(string) string) {
	for _, value := range values {
		normalized := normalize(value)
		if normalized == utils.EmptyString {
			continue
		}
		target[normalized] = struct{}{}
	}
}
