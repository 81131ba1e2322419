package session

import "fmt"

// Board is the 3×3 game board projection. It holds no rule logic; cells are
// written only from server-asserted updates plus the single optimistic local
// mark, and reset on room teardown.
type Board struct {
	cells [3][3]Cell
}

// Apply writes a mark at (x, y). It reports whether the board changed, so
// re-applying the same server-asserted write is a no-op. Writing a different
// role over an existing mark is rejected: the server never contradicts a
// move it already accepted, so a conflicting write is a stale frame.
func (b *Board) Apply(x, y int, r Role) (bool, error) {
	if x < 0 || x > 2 || y < 0 || y > 2 {
		return false, fmt.Errorf("cell (%d,%d) out of range", x, y)
	}
	current := b.cells[x][y]
	if current == Cell(r) {
		return false, nil
	}
	if current != CellEmpty {
		return false, fmt.Errorf("cell (%d,%d) already marked %s", x, y, current)
	}
	b.cells[x][y] = Cell(r)
	return true, nil
}

// Cell returns the state at (x, y); out-of-range reads are empty.
func (b *Board) Cell(x, y int) Cell {
	if x < 0 || x > 2 || y < 0 || y > 2 {
		return CellEmpty
	}
	return b.cells[x][y]
}

// Cells returns a copy of the grid.
func (b *Board) Cells() [3][3]Cell {
	return b.cells
}

// Empty reports whether no cell is marked.
func (b *Board) Empty() bool {
	for x := range b.cells {
		for y := range b.cells[x] {
			if b.cells[x][y] != CellEmpty {
				return false
			}
		}
	}
	return true
}

// Reset clears every cell.
func (b *Board) Reset() {
	b.cells = [3][3]Cell{}
}
