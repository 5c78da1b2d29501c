package physics

// Grid is a uniform grid for broad-phase rectangle overlap queries.
// Items are inserted by bounds and index; every cell the bounds touch
// records the index, so a query only visits items sharing a cell.
type Grid struct {
	bounds   Rect
	cellSize int
	cols     int
	rows     int
	cells    []gridCell
}

// gridCell stores the indices of items touching a cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewGrid creates a grid covering bounds with square cells of cellSize.
func NewGrid(bounds Rect, cellSize int) *Grid {
	if cellSize < 1 {
		cellSize = 1
	}
	cols := (bounds.W + cellSize - 1) / cellSize
	rows := (bounds.H + cellSize - 1) / cellSize
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Grid{
		bounds:   bounds,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert records index in every cell r touches.
func (g *Grid) Insert(r Rect, index int) {
	if r.Empty() {
		return
	}
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			idx := row*g.cols + col
			g.cells[idx].items = append(g.cells[idx].items, index)
		}
	}
}

// Query calls fn for each index stored in the cells r touches. An index that
// spans several cells may be reported more than once. If fn returns true,
// iteration stops early.
func (g *Grid) Query(r Rect, fn func(index int) bool) {
	if r.Empty() {
		return
	}
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, item := range g.cells[rowOffset+col].items {
				if fn(item) {
					return
				}
			}
		}
	}
}

// span returns the inclusive cell range covered by r, clamped to the grid.
func (g *Grid) span(r Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.posToCell(r.X, r.Y)
	c1, r1 = g.posToCell(r.Right()-1, r.Bottom()-1)
	return c0, r0, c1, r1
}

// posToCell converts field coordinates to grid cell coordinates.
// Positions outside the grid land in the nearest edge cell.
func (g *Grid) posToCell(x, y int) (col, row int) {
	col = floorDiv(x-g.bounds.X, g.cellSize)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = floorDiv(y-g.bounds.Y, g.cellSize)
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
