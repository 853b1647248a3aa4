// Package export renders a batch's tabular form to a raster image and wraps
// it in a single-page document sized to the image.
package export

import (
	"fmt"
	"image"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	cellPaddingX = 12.0
	cellPaddingY = 8.0
	headerShade  = 0.92
	gridShade    = 0.75
)

// TableRenderer draws rows of cells into an image sized to the natural
// content width. A TTF face is loaded from EXPORT_FONT when set; otherwise
// the fixed basicfont face is used, which keeps rendering dependency-free in
// development.
type TableRenderer struct {
	face     font.Face
	fontSize float64
}

func NewTableRenderer() (*TableRenderer, error) {
	r := &TableRenderer{fontSize: 14}

	fontPath := os.Getenv("EXPORT_FONT")
	if fontPath == "" {
		r.face = basicfont.Face7x13
		return r, nil
	}

	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read export font: %w", err)
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export font: %w", err)
	}
	r.face = truetype.NewFace(parsed, &truetype.Options{Size: r.fontSize})
	return r, nil
}

// Render draws the table. The first row is treated as the header and shaded.
func (r *TableRenderer) Render(rows [][]string) (image.Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("nothing to render")
	}

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(r.face)

	columns := len(rows[0])
	colWidths := make([]float64, columns)
	rowHeight := 0.0

	for _, row := range rows {
		for i, cell := range row {
			if i >= columns {
				break
			}
			w, h := measure.MeasureString(cell)
			if w > colWidths[i] {
				colWidths[i] = w
			}
			if h > rowHeight {
				rowHeight = h
			}
		}
	}

	width := 0.0
	for i := range colWidths {
		colWidths[i] += 2 * cellPaddingX
		width += colWidths[i]
	}
	rowHeight += 2 * cellPaddingY
	height := rowHeight * float64(len(rows))

	ctx := gg.NewContext(int(width)+1, int(height)+1)
	ctx.SetFontFace(r.face)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()

	// Header background
	ctx.SetRGB(headerShade, headerShade, headerShade)
	ctx.DrawRectangle(0, 0, width, rowHeight)
	ctx.Fill()

	// Grid
	ctx.SetRGB(gridShade, gridShade, gridShade)
	ctx.SetLineWidth(1)
	x := 0.0
	for _, w := range colWidths {
		ctx.DrawLine(x, 0, x, height)
		x += w
	}
	ctx.DrawLine(width, 0, width, height)
	for i := 0; i <= len(rows); i++ {
		y := rowHeight * float64(i)
		ctx.DrawLine(0, y, width, y)
	}
	ctx.Stroke()

	// Cells
	ctx.SetRGB(0.1, 0.1, 0.1)
	for rowIdx, row := range rows {
		x := 0.0
		y := rowHeight*float64(rowIdx) + rowHeight/2
		for colIdx, cell := range row {
			if colIdx >= columns {
				break
			}
			ctx.DrawStringAnchored(cell, x+cellPaddingX, y, 0, 0.35)
			x += colWidths[colIdx]
		}
	}

	return ctx.Image(), nil
}
