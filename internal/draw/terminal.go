package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ANSI sequences used by the game screen.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqReset      = "\033[0m"
)

// Text styles as SGR parameters.
const (
	StylePlain = ""
	StyleAlert = "1;31" // Bold red
)

// maxChunkSize is the maximum bytes handed to the underlying writer at once,
// a little under a typical 1500 byte MTU so SSH frames stay small.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and writes it in
// MTU-sized chunks on Flush. Cursor positions passed to it are canvas
// coordinates; the canvas offset is added on the way out.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte // Scratch for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w with the given
// canvas offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the canvas offset after a relayout.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// moveCursor appends a cursor position for 1-based canvas (col, row).
func (cw *ChunkWriter) moveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer so the canvas can render into the frame.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteAt places s at 1-based canvas position (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.WriteStyledAt(col, row, StylePlain, s)
}

// WriteStyledAt places s at (col, row) in the given style and resets the
// style afterwards.
func (cw *ChunkWriter) WriteStyledAt(col, row int, style, s string) {
	cw.moveCursor(col, row)
	if style == StylePlain {
		cw.buf.WriteString(s)
		return
	}
	cw.buf.WriteString("\033[")
	cw.buf.WriteString(style)
	cw.buf.WriteByte('m')
	cw.buf.WriteString(s)
	cw.buf.WriteString(seqReset)
}

// ClearScreen queues a full screen clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf.WriteString(seqClear)
}

// OpenScreen queues the window title, hides the cursor and clears.
func (cw *ChunkWriter) OpenScreen(title string) {
	cw.buf.WriteString("\033]0;")
	cw.buf.WriteString(title)
	cw.buf.WriteByte('\007')
	cw.buf.WriteString(seqHideCursor)
	cw.buf.WriteString(seqClear)
}

// CloseScreen queues a style reset, a clear and shows the cursor again.
func (cw *ChunkWriter) CloseScreen() {
	cw.buf.WriteString(seqReset)
	cw.buf.WriteString(seqClear)
	cw.buf.WriteString(seqShowCursor)
}

// Flush writes the queued frame to the underlying writer in chunks and
// resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
