package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/temirov/codepdf/internal/layout"
	"github.com/temirov/codepdf/internal/services/stream"
	"github.com/temirov/codepdf/internal/utils"
	"go.uber.org/zap"
)

// DocumentOptions configure the header written for the start event.
type DocumentOptions struct {
	Author    string
	CreatedAt time.Time
	Logger    *zap.Logger
}

type documentStreamRenderer struct {
	document layout.Document
	options  DocumentOptions
	flushed  bool
}

// NewDocumentRenderer returns a renderer that appends one block group per
// event to document and finalizes it on Flush.
func NewDocumentRenderer(document layout.Document, options DocumentOptions) StreamRenderer {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.CreatedAt.IsZero() {
		options.CreatedAt = time.Now()
	}
	return &documentStreamRenderer{document: document, options: options}
}

func (renderer *documentStreamRenderer) Handle(event stream.Event) error {
	var blocks []layout.BlockSpec
	switch event.Kind {
	case stream.EventKindStart:
		if event.Start == nil {
			return nil
		}
		blocks = HeaderBlocks(event.Start.Name, renderer.options.Author, renderer.options.CreatedAt)
	case stream.EventKindFolder:
		blocks = FolderBlocks(event.Folder)
	case stream.EventKindFile:
		blocks = FileBlocks(event.File)
	case stream.EventKindWarning:
		if event.Message != nil {
			renderer.options.Logger.Warn(event.Message.Message, zap.String("path", event.Path))
		}
	case stream.EventKindError:
		if event.Err != nil {
			renderer.options.Logger.Error(event.Err.Message, zap.String("path", event.Path))
		}
	}
	for _, block := range blocks {
		if err := renderer.document.AppendBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func (renderer *documentStreamRenderer) Flush() error {
	if renderer.flushed {
		return layout.ErrDocumentFinalized
	}
	renderer.flushed = true
	return renderer.document.Finalize()
}

// HeaderBlocks returns the title, author, date and spacer blocks that open a document.
func HeaderBlocks(rootName string, author string, createdAt time.Time) []layout.BlockSpec {
	return []layout.BlockSpec{
		{Kind: layout.BlockTitle, Text: layout.Escape(strings.ToUpper(rootName))},
		{Kind: layout.BlockMeta, Text: authorLabel + layout.Escape(author)},
		{Kind: layout.BlockMeta, Text: dateLabel + utils.FormatDate(createdAt)},
		{Kind: layout.BlockSpacer, Height: headerSpacerHeight},
	}
}

// FolderBlocks returns the heading for a folder, indented by its depth.
func FolderBlocks(folder *stream.FolderEvent) []layout.BlockSpec {
	if folder == nil {
		return nil
	}
	return []layout.BlockSpec{{
		Kind:   layout.BlockFolderHeading,
		Indent: indentUnitsPerDepth * folder.Depth,
		Text:   headingMarker + layout.Escape(folder.Name),
	}}
}

// FileBlocks returns the heading and body for a file. An unreadable file
// gets a single error block in place of its body.
func FileBlocks(file *stream.FileEvent) []layout.BlockSpec {
	if file == nil {
		return nil
	}
	heading := layout.BlockSpec{
		Kind:   layout.BlockFileHeading,
		Indent: indentUnitsPerDepth * file.Depth,
		Text:   headingMarker + layout.Escape(file.Name),
	}

	readError := file.ReadError
	if file.ReadErr != nil {
		readError = file.ReadErr.Error()
	}
	if readError != "" {
		return []layout.BlockSpec{
			heading,
			{Kind: layout.BlockError, Text: layout.Escape(fmt.Sprintf(readErrorFormat, readError))},
		}
	}

	body := file.Content
	if file.IsBinary {
		body = fmt.Sprintf(binaryOmittedFormat, file.MimeType, utils.FormatFileSize(file.SizeBytes))
	}
	return []layout.BlockSpec{
		heading,
		{Kind: layout.BlockPreformatted, Text: layout.Escape(body)},
		{Kind: layout.BlockSpacer, Height: fileSpacerHeight},
	}
}
