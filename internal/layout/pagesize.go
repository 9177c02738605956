package layout

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PointsPerInch converts inches to PDF points.
const PointsPerInch = 72.0

// PageSize is one of the supported paper sizes.
type PageSize int

const (
	PageSizeA4 PageSize = iota
	PageSizeLetter
	PageSizeLegal
)

var (
	// ErrUnknownPageSize is returned by ParsePageSize for unsupported names.
	ErrUnknownPageSize = errors.New("unknown page size")
	// ErrInvalidFontSize reports a non-positive font size.
	ErrInvalidFontSize = errors.New("font size must be positive")
	// ErrInvalidMargins reports negative margins or margins that leave no printable area.
	ErrInvalidMargins = errors.New("margins leave no printable area")
)

type pageDimensions struct {
	name   string
	width  float64
	height float64
}

var pageSizeDimensions = map[PageSize]pageDimensions{
	PageSizeA4:     {name: "A4", width: 595.2755905511812, height: 841.8897637795277},
	PageSizeLetter: {name: "LETTER", width: 612, height: 792},
	PageSizeLegal:  {name: "LEGAL", width: 612, height: 1008},
}

// PageSizeNames lists accepted page size names in display order.
var PageSizeNames = []string{"A4", "LETTER", "LEGAL"}

// ParsePageSize resolves a case-insensitive page size name.
func ParsePageSize(value string) (PageSize, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for pageSize, dimensions := range pageSizeDimensions {
		if dimensions.name == normalized {
			return pageSize, nil
		}
	}
	return PageSizeA4, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownPageSize, value, strings.Join(PageSizeNames, ", "))
}

func (pageSize PageSize) String() string {
	return pageSizeDimensions[pageSize].name
}

// Dimensions returns the page width and height in points.
func (pageSize PageSize) Dimensions() (float64, float64) {
	dimensions := pageSizeDimensions[pageSize]
	return dimensions.width, dimensions.height
}

// Margins are page margins in points.
type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// UniformMargins returns equal margins of the given size in inches.
func UniformMargins(inches float64) Margins {
	points := inches * PointsPerInch
	return Margins{Left: points, Top: points, Right: points, Bottom: points}
}

// Settings configure a document when it begins.
type Settings struct {
	PageSize  PageSize
	Margins   Margins
	FontSize  float64
	Author    string
	Title     string
	CreatedAt time.Time
}

// Validate checks that the settings describe a printable page.
func (settings Settings) Validate() error {
	if settings.FontSize <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, settings.FontSize)
	}
	margins := settings.Margins
	if margins.Left < 0 || margins.Top < 0 || margins.Right < 0 || margins.Bottom < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidMargins)
	}
	width, height := settings.PageSize.Dimensions()
	if margins.Left+margins.Right >= width || margins.Top+margins.Bottom >= height {
		return fmt.Errorf("%w: %.1fpt page width, %.1fpt page height", ErrInvalidMargins, width, height)
	}
	return nil
}
