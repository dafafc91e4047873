package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ctxprompt/internal/output"
	"github.com/temirov/ctxprompt/internal/types"
	"github.com/temirov/ctxprompt/internal/utils"
)

const (
	warningSkipFileMessage   = "skipping file due to read error"
	errorOpenFileFormat      = "open %s: %w"
	errorReadFileFormat      = "read %s: %w"
	errorInvalidTextFormat   = "%w: invalid byte 0x%02x at offset %d"
	logFieldSkippedFileCount = "skipped"
	summaryCollectedMessage  = "collected file contents"
	logFieldEmittedFileCount = "files"
)

// ErrNotText reports content that does not decode as UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// ContentResult holds the rendered content blocks of one collection pass.
type ContentResult struct {
	Blocks       string
	EmittedFiles int
	SkippedFiles []types.SkippedFile
}

// CollectContent renders a delimited block for every retained file under options.Root,
// visiting files in the same order as RenderTree. A file that cannot be read or is not
// valid UTF-8 is skipped with a warning and never aborts the collection.
func CollectContent(options WalkOptions) (ContentResult, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var contentBuilder strings.Builder
	result := ContentResult{}

	handler := func(event WalkEvent) error {
		if event.Kind != WalkEventFile {
			return nil
		}
		record, readErr := ReadFileRecord(event.Path, event.RelativePath)
		if readErr != nil {
			logger.Warn(warningSkipFileMessage, zap.String(logFieldPath, event.RelativePath), zap.Error(readErr))
			result.SkippedFiles = append(result.SkippedFiles, types.SkippedFile{RelativePath: event.RelativePath, Reason: readErr})
			return nil
		}
		contentBuilder.WriteString(output.FormatContentBlock(record))
		result.EmittedFiles++
		return nil
	}
	if walkErr := Walk(options, handler); walkErr != nil {
		return ContentResult{}, walkErr
	}

	logger.Debug(summaryCollectedMessage,
		zap.Int(logFieldEmittedFileCount, result.EmittedFiles),
		zap.Int(logFieldSkippedFileCount, len(result.SkippedFiles)),
	)
	result.Blocks = contentBuilder.String()
	return result, nil
}

// ReadFileRecord reads the whole file at path and returns it as text.
// The handle is closed before returning. Content that is not UTF-8 yields an error wrapping ErrNotText.
//
// #nosec G304
func ReadFileRecord(path string, relativePath string) (types.FileRecord, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return types.FileRecord{}, fmt.Errorf(errorOpenFileFormat, relativePath, openError)
	}
	defer fileHandle.Close()

	fileBytes, readError := io.ReadAll(fileHandle)
	if readError != nil {
		return types.FileRecord{}, fmt.Errorf(errorReadFileFormat, relativePath, readError)
	}
	if invalidOffset := utils.InvalidTextOffset(fileBytes); invalidOffset >= 0 {
		return types.FileRecord{}, fmt.Errorf(errorInvalidTextFormat, ErrNotText, fileBytes[invalidOffset], invalidOffset)
	}
	return types.FileRecord{RelativePath: relativePath, Content: string(fileBytes)}, nil
}
