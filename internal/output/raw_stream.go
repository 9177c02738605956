package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/codepdf/internal/services/stream"
	"github.com/temirov/codepdf/internal/types"
	"github.com/temirov/codepdf/internal/utils"
)

type rawStreamRenderer struct {
	stdout         io.Writer
	stderr         io.Writer
	includeSummary bool
	summary        *stream.SummaryEvent
}

// NewRawStreamRenderer prints an indented outline of kept folders and files.
func NewRawStreamRenderer(stdout, stderr io.Writer, includeSummary bool) StreamRenderer {
	return &rawStreamRenderer{
		stdout:         stdout,
		stderr:         stderr,
		includeSummary: includeSummary,
	}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindWarning:
		if event.Message != nil && renderer.stderr != nil {
			_, err := fmt.Fprintln(renderer.stderr, event.Message.Message)
			return err
		}
	case stream.EventKindError:
		if event.Err != nil && renderer.stderr != nil {
			_, err := fmt.Fprintln(renderer.stderr, event.Err.Message)
			return err
		}
	case stream.EventKindStart:
		if event.Start != nil && renderer.stdout != nil {
			_, err := fmt.Fprintln(renderer.stdout, event.Start.Root)
			return err
		}
	case stream.EventKindFolder:
		return renderer.writeFolder(event.Folder)
	case stream.EventKindFile:
		return renderer.writeFile(event.File)
	case stream.EventKindSummary:
		renderer.summary = event.Summary
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	if !renderer.includeSummary || renderer.stdout == nil || renderer.summary == nil {
		return nil
	}
	outputSummary := &types.OutputSummary{
		TotalFolders: renderer.summary.Folders,
		TotalFiles:   renderer.summary.Files,
		TotalSize:    utils.FormatFileSize(renderer.summary.Bytes),
	}
	_, err := fmt.Fprintln(renderer.stdout, FormatSummaryLine(outputSummary))
	return err
}

func (renderer *rawStreamRenderer) writeFolder(folder *stream.FolderEvent) error {
	if renderer.stdout == nil || folder == nil {
		return nil
	}
	_, err := fmt.Fprintf(renderer.stdout, "%s%s%s%s\n", strings.Repeat(listingIndent, folder.Depth+1), headingMarker, folder.Name, listingFolderSuffix)
	return err
}

func (renderer *rawStreamRenderer) writeFile(file *stream.FileEvent) error {
	if renderer.stdout == nil || file == nil {
		return nil
	}
	suffix := ""
	switch {
	case file.ReadError != "":
		suffix = fmt.Sprintf(listingReadErrorFormat, file.ReadError)
	case file.IsBinary:
		suffix = fmt.Sprintf(listingBinaryFormat, file.MimeType, utils.FormatFileSize(file.SizeBytes))
	}
	_, err := fmt.Fprintf(renderer.stdout, "%s%s%s%s\n", strings.Repeat(listingIndent, file.Depth+1), headingMarker, file.Name, suffix)
	return err
}
