// Package types defines every cross‑package data structure used by the ctxprompt CLI.
package types

const (
	// DefaultOutputFileName is written into the working directory when no output path is given.
	DefaultOutputFileName = "project_context.txt"

	// ContentFenceLanguage tags every fenced content block regardless of the file type.
	ContentFenceLanguage = "typescript"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// FileRecord is one retained file read as text.
type FileRecord struct {
	RelativePath string
	Content      string
}

// SkippedFile is a retained file whose content could not be emitted.
type SkippedFile struct {
	RelativePath string
	Reason       error
}

// PromptSummary describes a finished prompt generation run.
type PromptSummary struct {
	OutputPath        string
	EmittedFiles      int
	SkippedFiles      []SkippedFile
	SizeBytes         int64
	ApproximateTokens int
}
