package render

import (
	"io"

	"github.com/tomz197/aliens/internal/assets"
	"github.com/tomz197/aliens/internal/draw"
	"github.com/tomz197/aliens/internal/physics"
)

// Title is the terminal window title.
const Title = "Aliens"

// Windowed mode caps the play area at this many terminal cells.
const (
	windowCols = 100
	windowRows = 37
)

// Terminal renders frames with half-block characters.
type Terminal struct {
	sizeFunc    draw.TermSizeFunc
	catalog     *assets.Catalog
	field       physics.Rect
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter

	fullscreen bool
	termWidth  int
	termHeight int
	relayout   bool
}

var _ Renderer = (*Terminal)(nil)

// NewTerminal creates a renderer drawing field onto w. A nil catalog draws
// every entity as a filled rectangle.
func NewTerminal(w io.Writer, sizeFunc draw.TermSizeFunc, catalog *assets.Catalog, field physics.Rect) *Terminal {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	return &Terminal{
		sizeFunc:    sizeFunc,
		catalog:     catalog,
		field:       field,
		canvas:      draw.NewScaledCanvas(windowCols, windowRows, float64(field.W), float64(field.H)),
		chunkWriter: draw.NewChunkWriter(w, 0, 0),
		relayout:    true,
	}
}

// Open sets the title, hides the cursor and clears the screen.
func (t *Terminal) Open() error {
	t.chunkWriter.OpenScreen(Title)
	return t.chunkWriter.Flush()
}

// Close resets styles, clears the screen and shows the cursor again.
func (t *Terminal) Close() error {
	t.chunkWriter.CloseScreen()
	return t.chunkWriter.Flush()
}

// ToggleFullscreen switches between the bordered window and the whole terminal.
func (t *Terminal) ToggleFullscreen() {
	t.fullscreen = !t.fullscreen
	t.relayout = true
}

// Render draws one frame.
func (t *Terminal) Render(f Frame) error {
	t.updateLayout()
	t.canvas.Clear()

	for _, s := range f.Sprites {
		r := s.Rect.Move(-t.field.X, -t.field.Y)
		if t.catalog != nil {
			if sp, ok := t.catalog.Sprite(s.Kind, s.Frame); ok {
				t.canvas.DrawMask(r.X, r.Y, r.W, r.H, sp.Mask)
				continue
			}
		}
		t.canvas.FillRect(r.X, r.Y, r.W, r.H)
	}

	if err := t.canvas.Render(t.chunkWriter); err != nil {
		return err
	}
	if err := t.canvas.RenderBorder(t.chunkWriter); err != nil {
		return err
	}
	for _, txt := range hud(f, t.canvas) {
		txt.draw(t.chunkWriter)
	}
	return t.chunkWriter.Flush()
}

// updateLayout resizes the canvas when the terminal size or mode changed.
func (t *Terminal) updateLayout() {
	termWidth, termHeight, err := t.sizeFunc()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		termWidth, termHeight = t.termWidth, t.termHeight
	}
	if termWidth <= 0 || termHeight <= 0 {
		termWidth, termHeight = windowCols, windowRows
	}
	if !t.relayout && termWidth == t.termWidth && termHeight == t.termHeight {
		return
	}
	t.termWidth, t.termHeight = termWidth, termHeight
	t.relayout = false

	cols, rows, offsetCol, offsetRow := layout(termWidth, termHeight, t.fullscreen)
	t.canvas.Resize(cols, rows)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.chunkWriter.SetOffset(t.canvas.OffsetCol(), t.canvas.OffsetRow())
	t.chunkWriter.ClearScreen()
}

// layout returns the canvas size and its centering offset.
func layout(termWidth, termHeight int, fullscreen bool) (cols, rows, offsetCol, offsetRow int) {
	if fullscreen {
		return termWidth, termHeight, 0, 0
	}
	cols = min(termWidth, windowCols)
	rows = min(termHeight, windowRows)
	offsetCol = (termWidth - cols) / 2
	offsetRow = (termHeight - rows) / 2
	return cols, rows, offsetCol, offsetRow
}
