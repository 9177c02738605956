// Package types defines cross-package data structures used by the codepdf CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
	NodeTypeBinary    = "binary"

	CommandConvert = "convert"
	CommandList    = "list"
	CommandInit    = "init"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// OutputSummary captures aggregate information about emitted nodes.
type OutputSummary struct {
	TotalFolders int    `json:"totalFolders"`
	TotalFiles   int    `json:"totalFiles"`
	TotalSize    string `json:"totalSize"`
}
