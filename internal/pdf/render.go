// Package pdf renders guide text into a paginated PDF document.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
)

// Field is one labeled profile entry shown in the document header.
type Field struct {
	Label string
	Value string
}

const (
	pageMargin = 72.0 // one inch, in points

	titleSize  = 18.0
	headerSize = 13.0
	bodySize   = 11.0

	titleLineHeight = 24.0
	lineHeight      = 16.0

	bulletIndent = 18.0
	sectionGap   = 8.0
)

// Render lays the title, profile fields, and body text onto Letter pages,
// breaking to a new page whenever the next line would cross the bottom margin.
// Every line of the body appears in the output.
func Render(title, body string, fields []Field) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := doc.GetPageSize()
	contentW := pageW - 2*pageMargin
	bottom := pageH - pageMargin
	y := pageMargin

	// Centered, wrapped title.
	doc.SetFont("Helvetica", "B", titleSize)
	for _, line := range doc.SplitText(tr(title), contentW) {
		doc.SetXY(pageMargin, y)
		doc.CellFormat(contentW, titleLineHeight, line, "", 0, "C", false, 0, "")
		y += titleLineHeight
	}
	y += sectionGap
	doc.Line(pageMargin, y, pageW-pageMargin, y)
	y += 2 * sectionGap

	// Labeled profile section.
	doc.SetFont("Helvetica", "", bodySize)
	for _, f := range fields {
		for _, line := range doc.SplitText(tr(f.Label+": "+f.Value), contentW) {
			if y+lineHeight > bottom {
				doc.AddPage()
				y = pageMargin
			}
			doc.Text(pageMargin, y+bodySize, line)
			y += lineHeight
		}
	}
	y += sectionGap
	doc.Line(pageMargin, y, pageW-pageMargin, y)
	y += 2 * sectionGap

	// Body, classified line by line.
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			y += sectionGap
		case isSectionHeader(line):
			doc.SetFont("Helvetica", "B", headerSize)
			y += sectionGap
			y = drawWrapped(doc, tr(stripHeaderMarker(line)), pageMargin, contentW, y, bottom, headerSize)
		case isBullet(line):
			doc.SetFont("Helvetica", "", bodySize)
			text := strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
			first := true
			for _, wrapped := range doc.SplitText(tr(text), contentW-bulletIndent) {
				if y+lineHeight > bottom {
					doc.AddPage()
					y = pageMargin
				}
				if first {
					doc.Text(pageMargin+4, y+bodySize, tr("•"))
					first = false
				}
				doc.Text(pageMargin+bulletIndent, y+bodySize, wrapped)
				y += lineHeight
			}
		default:
			doc.SetFont("Helvetica", "", bodySize)
			y = drawWrapped(doc, tr(line), pageMargin, contentW, y, bottom, bodySize)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// drawWrapped writes wrapped lines starting at y and returns the new cursor,
// inserting page breaks as needed. The caller sets the font first.
func drawWrapped(doc *fpdf.Fpdf, text string, x, width, y, bottom, fontSize float64) float64 {
	for _, line := range doc.SplitText(text, width) {
		if y+lineHeight > bottom {
			doc.AddPage()
			y = pageMargin
		}
		doc.Text(x, y+fontSize, line)
		y += lineHeight
	}
	return y
}

// isSectionHeader recognizes explicit header markers and short shouty lines.
func isSectionHeader(line string) bool {
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "**") {
		return true
	}
	if len(line) > 40 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || line == "-"
}

func stripHeaderMarker(line string) string {
	line = strings.TrimLeft(line, "# ")
	line = strings.Trim(line, "*")
	return strings.TrimSpace(line)
}
