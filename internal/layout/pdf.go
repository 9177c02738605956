package layout

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/multierr"
)

const (
	pdfUnit             = "pt"
	pdfOrientation      = "P"
	headingFontFamily   = "Helvetica"
	codeFontFamily      = "Courier"
	titleFontSize       = 24.0
	metaFontSize        = 12.0
	footerFontSize      = 8.0
	lineHeightFactor    = 1.2
	tabReplacement      = "    "
	pageNumberFormat    = "Page %d of {nb}"
	creatorName         = "codepdf"
	cp1252Descriptor    = ""
	footerOffsetDivisor = 2
)

// blockStyle mirrors a paragraph style: font, size and vertical spacing in points.
type blockStyle struct {
	family      string
	fontStyle   string
	size        float64
	spaceBefore float64
	spaceAfter  float64
	red         int
}

// PDFDocument renders blocks into a PDF using fpdf.
// It is not safe for concurrent use; a single renderer owns it.
type PDFDocument struct {
	pdf         *fpdf.Fpdf
	settings    Settings
	translate   func(string) string
	destination io.Writer
	closer      io.Closer
	finalized   bool
}

// Begin starts a PDF document that is written to destination on Finalize.
func Begin(settings Settings, destination io.Writer) (*PDFDocument, error) {
	if validationError := settings.Validate(); validationError != nil {
		return nil, validationError
	}
	width, height := settings.PageSize.Dimensions()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: pdfOrientation,
		UnitStr:        pdfUnit,
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(settings.Margins.Left, settings.Margins.Top, settings.Margins.Right)
	pdf.SetAutoPageBreak(true, settings.Margins.Bottom)
	pdf.SetCatalogSort(true)
	pdf.SetCreator(creatorName, true)
	pdf.SetAuthor(settings.Author, true)
	if settings.Title != "" {
		pdf.SetTitle(settings.Title, true)
	}
	if !settings.CreatedAt.IsZero() {
		pdf.SetCreationDate(settings.CreatedAt)
	}

	document := &PDFDocument{
		pdf:         pdf,
		settings:    settings,
		translate:   pdf.UnicodeTranslatorFromDescriptor(cp1252Descriptor),
		destination: destination,
	}
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(document.drawFooter)
	pdf.AddPage()
	if pdf.Err() {
		return nil, fmt.Errorf("initialize pdf: %w", pdf.Error())
	}
	return document, nil
}

// CreatePDFFile creates outputPath and begins a document that closes the file on Finalize.
func CreatePDFFile(outputPath string, settings Settings) (*PDFDocument, error) {
	if validationError := settings.Validate(); validationError != nil {
		return nil, validationError
	}
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return nil, fmt.Errorf("create output file %s: %w", outputPath, createError)
	}
	document, beginError := Begin(settings, outputFile)
	if beginError != nil {
		return nil, multierr.Append(beginError, outputFile.Close())
	}
	document.closer = outputFile
	return document, nil
}

func (document *PDFDocument) AppendBlock(block BlockSpec) error {
	if document.finalized {
		return ErrDocumentFinalized
	}
	switch block.Kind {
	case BlockSpacer:
		document.pdf.Ln(block.Height)
	case BlockPreformatted:
		document.drawPreformatted(block)
	default:
		document.drawParagraph(block, document.styleFor(block.Kind))
	}
	if document.pdf.Err() {
		return fmt.Errorf("append %s block: %w", block.Kind, document.pdf.Error())
	}
	return nil
}

// Finalize writes the document and closes the destination when it owns one.
func (document *PDFDocument) Finalize() error {
	if document.finalized {
		return ErrDocumentFinalized
	}
	document.finalized = true
	outputError := document.pdf.Output(document.destination)
	if outputError != nil {
		outputError = fmt.Errorf("write pdf: %w", outputError)
	}
	if document.closer != nil {
		outputError = multierr.Append(outputError, document.closer.Close())
	}
	return outputError
}

// PageCount returns the number of pages produced so far.
func (document *PDFDocument) PageCount() int {
	return document.pdf.PageCount()
}

func (document *PDFDocument) styleFor(kind BlockKind) blockStyle {
	fontSize := document.settings.FontSize
	switch kind {
	case BlockTitle:
		return blockStyle{family: headingFontFamily, fontStyle: "B", size: titleFontSize, spaceAfter: 20}
	case BlockMeta:
		return blockStyle{family: headingFontFamily, size: metaFontSize, spaceAfter: 6}
	case BlockFolderHeading:
		return blockStyle{family: headingFontFamily, fontStyle: "B", size: fontSize + 2, spaceBefore: 10, spaceAfter: 5}
	case BlockFileHeading:
		return blockStyle{family: headingFontFamily, fontStyle: "I", size: fontSize + 1, spaceBefore: 5, spaceAfter: 2}
	case BlockError:
		return blockStyle{family: headingFontFamily, size: fontSize, red: 160}
	default:
		return blockStyle{family: headingFontFamily, size: fontSize}
	}
}

func (document *PDFDocument) drawParagraph(block BlockSpec, style blockStyle) {
	pdf := document.pdf
	pdf.SetFont(style.family, style.fontStyle, style.size)
	pdf.SetTextColor(style.red, 0, 0)
	if style.spaceBefore > 0 && pdf.GetY() > document.settings.Margins.Top {
		pdf.Ln(style.spaceBefore)
	}
	indentWidth := document.indentWidth(block.Indent)
	pdf.SetX(document.settings.Margins.Left + indentWidth)
	text := document.translate(Unescape(block.Text))
	pdf.MultiCell(document.printableWidth()-indentWidth, style.size*lineHeightFactor, text, "", "L", false)
	if style.spaceAfter > 0 {
		pdf.Ln(style.spaceAfter)
	}
	pdf.SetTextColor(0, 0, 0)
}

func (document *PDFDocument) drawPreformatted(block BlockSpec) {
	pdf := document.pdf
	fontSize := document.settings.FontSize
	lineHeight := fontSize * lineHeightFactor
	pdf.SetFont(codeFontFamily, "", fontSize)
	indentWidth := document.indentWidth(block.Indent)
	cellWidth := document.printableWidth() - indentWidth

	content := strings.ReplaceAll(Unescape(block.Text), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	for _, line := range strings.Split(content, "\n") {
		line = strings.ReplaceAll(line, "\t", tabReplacement)
		if line == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.SetX(document.settings.Margins.Left + indentWidth)
		pdf.MultiCell(cellWidth, lineHeight, document.translate(line), "", "L", false)
	}
	pdf.Ln(10)
}

func (document *PDFDocument) drawFooter() {
	pdf := document.pdf
	pdf.SetY(-document.settings.Margins.Bottom / footerOffsetDivisor)
	pdf.SetFont(headingFontFamily, "", footerFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, footerFontSize, fmt.Sprintf(pageNumberFormat, pdf.PageNo()), "", 0, "C", false, 0, "")
}

func (document *PDFDocument) indentWidth(indent int) float64 {
	if indent <= 0 {
		return 0
	}
	return float64(indent) * document.pdf.GetStringWidth(" ")
}

func (document *PDFDocument) printableWidth() float64 {
	width, _ := document.pdf.GetPageSize()
	return width - document.settings.Margins.Left - document.settings.Margins.Right
}
