package utils

const (
	// EmptyString represents a reusable empty string constant.
	EmptyString = ""

	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// IgnoreFileName holds extra glob patterns at the root of a scanned project.
	IgnoreFileName = ".ctxpromptignore"

	// LocalConfigFileName is looked up in the working directory.
	LocalConfigFileName = ".ctxprompt.yaml"
	// GlobalConfigDirectoryName is created under the user's home directory.
	GlobalConfigDirectoryName = ".ctxprompt"
	// GlobalConfigFileName lives inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "ctxprompt failed"

	approximateCharactersPerToken = 4
)
