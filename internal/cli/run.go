package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ctxprompt/internal/commands"
	"github.com/temirov/ctxprompt/internal/config"
	"github.com/temirov/ctxprompt/internal/output"
	"github.com/temirov/ctxprompt/internal/types"
	"github.com/temirov/ctxprompt/internal/utils"
)

const (
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root that is a regular file.
	errorNotDirectoryFormat = "path '%s' is not a directory"

	scanningProjectMessage   = "Scanning project"
	generatingPromptMessage  = "Generating prompt"
	skippedFilesMessage      = "some files were skipped"
	clipboardFailedMessage   = "failed to copy prompt to clipboard"
	clipboardMissingMessage  = "clipboard is not available"
	logFieldRoot             = "root"
	logFieldCount            = "count"
	successTemplate          = "Prompt saved to: %s\n"
	tokenCountTemplate       = "Approximate token count: %d\n"
	fileCountTemplate        = "Files: %d emitted, %d skipped (%s)\n"
	copiedToClipboardMessage = "Prompt copied to clipboard\n"
)

// promptOptions stores flag values of the root command.
type promptOptions struct {
	rootPath          string
	outputPath        string
	outputChanged     bool
	exclusionPatterns []string
	configPath        string
	copyToClipboard   bool
	copyChanged       bool
}

// runPrompt validates the project root, builds the prompt, writes it and reports the outcome.
func runPrompt(command *cobra.Command, dependencies Dependencies, options promptOptions) error {
	logger := dependencies.Logger
	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return fmt.Errorf(workingDirectoryErrorFormat, err)
		}
		workingDirectory = currentDirectory
	}

	validatedRoot, rootErr := resolveProjectRoot(workingDirectory, options.rootPath)
	if rootErr != nil {
		return rootErr
	}

	applicationConfiguration, configErr := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configErr != nil {
		return configErr
	}

	rootPatterns, ignoreFileErr := config.LoadRootIgnorePatterns(validatedRoot.AbsolutePath)
	if ignoreFileErr != nil {
		return ignoreFileErr
	}
	ignoreRules, rulesErr := config.NewIgnoreRules(applicationConfiguration.Ignore, append(rootPatterns, options.exclusionPatterns...))
	if rulesErr != nil {
		return rulesErr
	}

	outputPath := options.outputPath
	if !options.outputChanged && applicationConfiguration.Output != "" {
		outputPath = applicationConfiguration.Output
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(workingDirectory, outputPath)
	}
	outputPath = filepath.Clean(outputPath)

	logger.Info(scanningProjectMessage, zap.String(logFieldRoot, validatedRoot.AbsolutePath))
	logger.Info(generatingPromptMessage)
	document, buildErr := commands.BuildPrompt(commands.WalkOptions{
		Root:          validatedRoot.AbsolutePath,
		Rules:         ignoreRules,
		ExcludedFiles: []string{outputPath},
		Logger:        logger,
	})
	if buildErr != nil {
		return buildErr
	}

	writtenBytes, writeErr := output.WriteDocumentFile(outputPath, document.Text)
	if writeErr != nil {
		return writeErr
	}
	summary := types.PromptSummary{
		OutputPath:        outputPath,
		EmittedFiles:      document.Content.EmittedFiles,
		SkippedFiles:      document.Content.SkippedFiles,
		SizeBytes:         writtenBytes,
		ApproximateTokens: utils.ApproximateTokenCount(document.Text),
	}
	if len(summary.SkippedFiles) > 0 {
		logger.Warn(skippedFilesMessage, zap.Int(logFieldCount, len(summary.SkippedFiles)))
	}
	if err := reportSummary(command, summary); err != nil {
		return err
	}

	copyEnabled := options.copyToClipboard
	if !options.copyChanged && applicationConfiguration.Clipboard != nil {
		copyEnabled = *applicationConfiguration.Clipboard
	}
	if copyEnabled {
		copyPrompt(command, dependencies, document.Text)
	}
	return nil
}

// resolveProjectRoot converts the input path to absolute form and checks that it is a directory.
func resolveProjectRoot(workingDirectory string, inputPath string) (types.ValidatedPath, error) {
	absolutePath := inputPath
	if !filepath.IsAbs(absolutePath) {
		absolutePath = filepath.Join(workingDirectory, absolutePath)
	}
	absolutePath, absolutePathError := filepath.Abs(absolutePath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	info, fileStatusError := os.Stat(absolutePath)
	if fileStatusError != nil {
		if errors.Is(fileStatusError, os.ErrNotExist) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: absolutePath, IsDir: true}, nil
}

func reportSummary(command *cobra.Command, summary types.PromptSummary) error {
	writer := command.OutOrStdout()
	if _, err := fmt.Fprintf(writer, successTemplate, summary.OutputPath); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, tokenCountTemplate, summary.ApproximateTokens); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, fileCountTemplate, summary.EmittedFiles, len(summary.SkippedFiles), utils.FormatFileSize(summary.SizeBytes))
	return err
}

func copyPrompt(command *cobra.Command, dependencies Dependencies, text string) {
	if dependencies.Clipboard == nil {
		dependencies.Logger.Warn(clipboardMissingMessage)
		return
	}
	if err := dependencies.Clipboard.Copy(text); err != nil {
		dependencies.Logger.Warn(clipboardFailedMessage, zap.Error(err))
		return
	}
	fmt.Fprint(command.OutOrStdout(), copiedToClipboardMessage)
}
