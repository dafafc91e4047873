// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ctxprompt/internal/services/clipboard"
	"github.com/temirov/ctxprompt/internal/types"
	"github.com/temirov/ctxprompt/internal/utils"
)

const (
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	exclusionFlagName    = "exclude"
	exclusionFlagShort   = "e"
	configFlagName       = "config"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "ctxprompt version: %s\n"
	defaultPath          = "."
	rootUse              = "ctxprompt [path]"
	rootShortDescription = "bundle a project into a single LLM prompt file"
	rootLongDescription  = `ctxprompt scans a project directory, skips build artifacts and binary assets,
and writes the directory tree followed by the contents of every remaining text file
into one prompt file.
Use -e to exclude extra glob patterns, -o to choose the output file, and --copy to
also place the prompt on the clipboard.`
	rootUsageExample = `  # Bundle the current directory into project_context.txt
  ctxprompt

  # Bundle ./web into prompt.txt, skipping generated code
  ctxprompt ./web -o prompt.txt -e "**/*.generated.ts"`
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./.ctxprompt.yaml, or to ~/.ctxprompt/config.yaml with --global.
Existing files are kept unless --force is given.`
	outputFlagDescription      = "output file"
	exclusionFlagDescription   = "exclude glob pattern (repeatable)"
	configFlagDescription      = "configuration file path"
	versionFlagDescription     = "display application version"
	globalFlagDescription      = "write the global configuration file"
	forceFlagDescription       = "overwrite an existing configuration file"
	initializedMessageTemplate = "Configuration written to %s\n"
)

// Dependencies carries the collaborators of the command tree.
type Dependencies struct {
	Logger           *zap.Logger
	Clipboard        clipboard.Copier
	WorkingDirectory string
	Output           io.Writer
}

// Execute runs the ctxprompt application with the process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{
		Logger:    logger,
		Clipboard: clipboard.NewService(),
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	var options promptOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			options.rootPath = defaultPath
			if len(arguments) > 0 {
				options.rootPath = arguments[0]
			}
			options.outputChanged = command.Flags().Changed(outputFlagName)
			options.copyChanged = command.Flags().Changed(copyFlagName)
			return runPrompt(command, dependencies, options)
		},
	}
	if dependencies.Output != nil {
		rootCommand.SetOut(dependencies.Output)
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, types.DefaultOutputFileName, outputFlagDescription)
	flagSet.StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagShort, nil, exclusionFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	registerCopyFlag(flagSet, &options.copyToClipboard)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	return rootCommand
}
