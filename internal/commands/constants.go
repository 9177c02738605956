package commands

const (
	// WarningDirectoryReadFormat reports a directory that could not be listed.
	WarningDirectoryReadFormat = "skipping unreadable directory %s: %v"
	// WarningBrokenLinkFormat reports a symbolic link whose target cannot be resolved.
	WarningBrokenLinkFormat = "skipping broken symbolic link %s: %v"
	// WarningSymlinkCycleFormat reports a symbolic link that leads back to a directory already on the walk path.
	WarningSymlinkCycleFormat = "skipping symbolic link cycle at %s"
	// WarningDuplicateDirectoryFormat reports a symbolic link to a directory that was already rendered.
	WarningDuplicateDirectoryFormat = "skipping %s: directory already visited through another path"
	// WarningFileReadFormat reports a file whose content could not be read.
	WarningFileReadFormat = "failed to read %s: %v"

	errorNilHandler       = "tree stream handler is nil"
	errorRootStatFormat   = "stat root %s: %w"
	errorRootNotDirectory = "root %s is not a directory"

	defaultWorkerCount    = 4
	readBatchSizeFactor   = 2
	relativeRootPath      = "."
	relativePathSeparator = "/"
)
