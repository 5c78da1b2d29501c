package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Game objects draw in logical coordinates which are scaled to terminal pixels.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x]

	logicalWidth  float64
	logicalHeight float64

	// 0-based terminal offsets of the canvas origin.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
}

// toPixelX maps a logical x to a fractional terminal column.
func (c *Canvas) toPixelX(x int) float64 {
	return float64(x) * float64(c.termWidth) / c.logicalWidth
}

// toPixelY maps a logical y to a fractional sub-pixel row.
func (c *Canvas) toPixelY(y int) float64 {
	return float64(y) * float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// pixel reports whether the terminal sub-pixel at (x, y) is set.
func (c *Canvas) pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// pixelSpan maps the logical span [start, start+length) to terminal pixels.
// Every non-empty span covers at least one pixel.
func pixelSpan(start, length int, toPixel func(int) float64) (int, int) {
	p0 := int(math.Floor(toPixel(start)))
	p1 := int(math.Ceil(toPixel(start + length)))
	if p1 <= p0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// FillRect sets every pixel covered by the logical rectangle.
func (c *Canvas) FillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	px0, px1 := pixelSpan(x, w, c.toPixelX)
	py0, py1 := pixelSpan(y, h, c.toPixelY)
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			c.setPixel(px, py)
		}
	}
}

// DrawMask stretches mask over the logical rectangle. A terminal pixel is set
// when any mask cell it covers is set, so small sprites never vanish.
func (c *Canvas) DrawMask(x, y, w, h int, mask [][]bool) {
	if w <= 0 || h <= 0 || len(mask) == 0 || len(mask[0]) == 0 {
		return
	}
	mw, mh := len(mask[0]), len(mask)
	px0, px1 := pixelSpan(x, w, c.toPixelX)
	py0, py1 := pixelSpan(y, h, c.toPixelY)
	dw, dh := px1-px0, py1-py0

	for py := py0; py < py1; py++ {
		my0 := (py - py0) * mh / dh
		my1 := max(((py-py0+1)*mh+dh-1)/dh, my0+1)
		for px := px0; px < px1; px++ {
			mx0 := (px - px0) * mw / dw
			mx1 := max(((px-px0+1)*mw+dw-1)/dw, mx0+1)
			if maskAny(mask, mx0, mx1, my0, my1) {
				c.setPixel(px, py)
			}
		}
	}
}

func maskAny(mask [][]bool, x0, x1, y0, y1 int) bool {
	for my := y0; my < y1 && my < len(mask); my++ {
		row := mask[my]
		for mx := x0; mx < x1 && mx < len(row); mx++ {
			if row[mx] {
				return true
			}
		}
	}
	return false
}

// Render outputs the canvas to the writer using half-block characters.
// Empty cells are written as spaces so the previous frame is overwritten
// without clearing the screen.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, 1+c.offsetCol)
		for col := 0; col < c.termWidth; col++ {
			top := c.pixel(col, row*2)
			bottom := c.pixel(col, row*2+1)

			switch {
			case top && bottom:
				c.renderBuf.WriteRune(BlockFull)
			case top:
				c.renderBuf.WriteRune(BlockUpperHalf)
			case bottom:
				c.renderBuf.WriteRune(BlockLowerHalf)
			default:
				c.renderBuf.WriteByte(' ')
			}
		}
	}

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the canvas on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// Use it to place text overlays next to canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y int) (col, row int) {
	px := int(math.Floor(c.toPixelX(x)))
	py := int(math.Floor(c.toPixelY(y)))
	return px + 1, py/2 + 1
}
