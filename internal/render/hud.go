package render

import (
	"strconv"

	"github.com/tomz197/aliens/internal/draw"
)

// Logical position of the score line.
const (
	scoreX = 10
	scoreY = 450
)

const invincibleLabel = "INVINCIBLE"

// text is a string placed at a 1-based canvas position.
type text struct {
	col   int
	row   int
	value string
	style string
}

// draw writes the text through cw, which applies the canvas offset.
func (t text) draw(cw *draw.ChunkWriter) {
	if t.value == "" {
		return
	}
	cw.WriteStyledAt(max(t.col, 1), max(t.row, 1), t.style, t.value)
}

// hud returns the overlay texts for f on canvas c.
func hud(f Frame, c *draw.Canvas) []text {
	col, row := c.LogicalToTerminal(scoreX, scoreY)
	texts := []text{{col: col, row: min(row, c.TerminalHeight()), value: "Score: " + strconv.Itoa(f.Score)}}

	if f.Invincible {
		texts = append(texts, text{
			col:   c.TerminalWidth() - len(invincibleLabel) + 1,
			row:   1,
			value: invincibleLabel,
			style: draw.StyleAlert,
		})
	}
	return texts
}
