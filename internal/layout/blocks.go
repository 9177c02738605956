// Package layout defines the block model consumed by document backends and
// the backends themselves: an fpdf writer and an in-memory recorder.
//
// Block text is markup-escaped: the five characters & < > " ' are stored as
// entities and every backend unescapes them before drawing.
package layout

import (
	"html"
	"strings"
)

// BlockKind identifies the style of a block.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockMeta
	BlockFolderHeading
	BlockFileHeading
	BlockPreformatted
	BlockSpacer
	BlockError
)

var blockKindNames = map[BlockKind]string{
	BlockTitle:         "title",
	BlockMeta:          "meta",
	BlockFolderHeading: "folder_heading",
	BlockFileHeading:   "file_heading",
	BlockPreformatted:  "preformatted",
	BlockSpacer:        "spacer",
	BlockError:         "error",
}

func (kind BlockKind) String() string {
	if name, ok := blockKindNames[kind]; ok {
		return name
	}
	return "unknown"
}

// BlockSpec is one unit appended to a Document.
// Indent is measured in units of one space width of the block's font.
// Height is used by spacers only and is measured in points.
type BlockSpec struct {
	Kind   BlockKind
	Text   string
	Indent int
	Height float64
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape converts raw text into block markup.
func Escape(text string) string {
	return markupEscaper.Replace(text)
}

// Unescape converts block markup back into raw text.
func Unescape(markup string) string {
	return html.UnescapeString(markup)
}
