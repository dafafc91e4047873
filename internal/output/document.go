// Package output formats the prompt document and persists it.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ctxprompt/internal/types"
)

const (
	// ProjectStructureHeader opens the tree listing.
	ProjectStructureHeader = "### PROJECT STRUCTURE ###"
	// FileContentsHeader opens the content blocks.
	FileContentsHeader = "### FILE CONTENTS ###"

	treeIndentUnit        = "    "
	directorySuffix       = "/"
	codeFence             = "```"
	startOfFileFormat     = "--- START OF FILE: %s ---"
	endOfFileFormat       = "--- END OF FILE: %s ---"
	lineBreak             = "\n"
	outputFilePermissions = 0o644

	errorWriteOutputFormat  = "write output %s: %w"
	errorCreateParentFormat = "create output directory %s: %w"
)

// TreeHeader returns the header line and the blank line that precede the tree listing.
func TreeHeader() string {
	return ProjectStructureHeader + lineBreak + lineBreak
}

// FormatTreeLine renders one listing line indented by depth levels.
// Directories carry a trailing slash.
func FormatTreeLine(depth int, name string, isDirectory bool) string {
	if depth < 0 {
		depth = 0
	}
	var builder strings.Builder
	builder.WriteString(strings.Repeat(treeIndentUnit, depth))
	builder.WriteString(name)
	if isDirectory {
		builder.WriteString(directorySuffix)
	}
	builder.WriteString(lineBreak)
	return builder.String()
}

// TreeFooter terminates the tree listing with a blank line.
func TreeFooter() string {
	return lineBreak
}

// StartMarker returns the marker line opening a content block.
func StartMarker(relativePath string) string {
	return fmt.Sprintf(startOfFileFormat, relativePath)
}

// EndMarker returns the marker line closing a content block.
func EndMarker(relativePath string) string {
	return fmt.Sprintf(endOfFileFormat, relativePath)
}

// FormatContentBlock renders one file as a start marker, a fenced verbatim body and an end marker,
// followed by a blank line.
func FormatContentBlock(record types.FileRecord) string {
	var builder strings.Builder
	builder.Grow(len(record.Content) + 2*len(record.RelativePath) + 64)
	builder.WriteString(StartMarker(record.RelativePath))
	builder.WriteString(lineBreak)
	builder.WriteString(codeFence + types.ContentFenceLanguage)
	builder.WriteString(lineBreak)
	builder.WriteString(record.Content)
	builder.WriteString(lineBreak)
	builder.WriteString(codeFence)
	builder.WriteString(lineBreak)
	builder.WriteString(EndMarker(record.RelativePath))
	builder.WriteString(lineBreak)
	builder.WriteString(lineBreak)
	return builder.String()
}

// AssembleDocument joins the tree listing and the content blocks under their headers.
func AssembleDocument(treeListing string, contentBlocks string) string {
	var builder strings.Builder
	builder.Grow(len(treeListing) + len(contentBlocks) + len(FileContentsHeader) + 2)
	builder.WriteString(treeListing)
	builder.WriteString(FileContentsHeader)
	builder.WriteString(lineBreak)
	builder.WriteString(lineBreak)
	builder.WriteString(contentBlocks)
	return builder.String()
}

// WriteDocumentFile writes document to outputPath, replacing any existing file,
// and returns the number of bytes written. Missing parent directories are created.
func WriteDocumentFile(outputPath string, document string) (int64, error) {
	parentDirectory := filepath.Dir(outputPath)
	if mkdirError := os.MkdirAll(parentDirectory, 0o755); mkdirError != nil {
		return 0, fmt.Errorf(errorCreateParentFormat, parentDirectory, mkdirError)
	}
	if writeError := os.WriteFile(outputPath, []byte(document), outputFilePermissions); writeError != nil {
		return 0, fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	return int64(len(document)), nil
}
