package utils

// Application-wide names shared across packages.
const (
	// ApplicationName is the name of the command and of its configuration directory.
	ApplicationName = "codepdf"
	// GitIgnoreFileName is the name of the Git ignore file read at the traversal root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// PythonCacheDirectoryName is the interpreter bytecode cache directory.
	PythonCacheDirectoryName = "__pycache__"
	// OutputFileExtension is the extension of documents produced by the tool.
	OutputFileExtension = ".pdf"
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".codepdf.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".codepdf"
	// GlobalConfigFileName is the file name inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "codepdf failed"
)
