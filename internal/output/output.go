// Package output turns stream events into documents and listings.
package output

import (
	"fmt"

	"github.com/temirov/codepdf/internal/types"
)

const (
	headingMarker          = "— "
	indentUnitsPerDepth    = 4
	headerSpacerHeight     = 20
	fileSpacerHeight       = 10
	authorLabel            = "Author: "
	dateLabel              = "Date: "
	binaryOmittedFormat    = "[binary content omitted: %s, %s]"
	readErrorFormat        = "[Error reading file: %s]"
	listingIndent          = "    "
	listingFolderSuffix    = "/"
	listingBinaryFormat    = " [binary %s, %s]"
	listingReadErrorFormat = " [unreadable: %s]"
)

// FormatSummaryLine formats an OutputSummary into the raw summary line.
func FormatSummaryLine(summary *types.OutputSummary) string {
	if summary == nil {
		summary = &types.OutputSummary{}
	}
	fileLabel := "files"
	if summary.TotalFiles == 1 {
		fileLabel = "file"
	}
	folderLabel := "folders"
	if summary.TotalFolders == 1 {
		folderLabel = "folder"
	}
	return fmt.Sprintf("Summary: %d %s, %d %s, %s", summary.TotalFiles, fileLabel, summary.TotalFolders, folderLabel, summary.TotalSize)
}
