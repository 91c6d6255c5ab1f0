package tetris

import "strings"

const (
	Cols        = 10
	VisibleRows = 20
	BufferRows  = 20
	TotalRows   = VisibleRows + BufferRows
)

// Board is the playfield. Rows [0, BufferRows) are the hidden buffer above
// the visible area; row indices grow downward. A cell holds the kind that
// locked into it, or KindNone.
type Board [TotalRows][Cols]Kind

// Collides reports whether shape placed with its top-left corner at
// (row, col) leaves the horizontal bounds, reaches the floor, or overlaps
// an occupied cell. Cells above row 0 never collide.
func (b *Board) Collides(shape Shape, row, col int) bool {
	for i := range shape {
		for j, filled := range shape[i] {
			if !filled {
				continue
			}

			x := col + j
			y := row + i

			if x < 0 || x >= Cols || y >= TotalRows {
				return true
			}

			if y >= 0 && b[y][x] != KindNone {
				return true
			}
		}
	}

	return false
}

// Lock writes marker into every occupied cell of shape at (row, col) that
// lies inside the board. Callers must have checked Collides first.
func (b *Board) Lock(shape Shape, row, col int, marker Kind) {
	for i := range shape {
		for j, filled := range shape[i] {
			if !filled {
				continue
			}

			x := col + j
			y := row + i

			if x < 0 || x >= Cols || y >= TotalRows {
				panic("tetris: lock outside board bounds")
			}
			if y >= 0 {
				b[y][x] = marker
			}
		}
	}
}

// FullRows returns the indices of rows with no empty cell, top to bottom.
func (b *Board) FullRows() []int {
	var full []int
	for y := range b {
		if rowFull(&b[y]) {
			full = append(full, y)
		}
	}
	return full
}

func rowFull(row *[Cols]Kind) bool {
	for _, cell := range row {
		if cell == KindNone {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row at once, shifts the remaining rows
// down preserving their order, and fills the top with empty rows. It
// returns the indices the cleared rows had before removal.
func (b *Board) ClearFullLines() []int {
	cleared := b.FullRows()
	if len(cleared) == 0 {
		return nil
	}

	dst := TotalRows - 1
	for src := TotalRows - 1; src >= 0; src-- {
		if rowFull(&b[src]) {
			continue
		}
		b[dst] = b[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		b[dst] = [Cols]Kind{}
	}

	return cleared
}

// GhostRow returns the lowest row at or below row where shape can rest
// without colliding, simulating an instant drop.
func (b *Board) GhostRow(shape Shape, row, col int) int {
	for !b.Collides(shape, row+1, col) {
		row++
	}
	return row
}

// Visible returns a copy of the rows shown to the player.
func (b *Board) Visible() [VisibleRows][Cols]Kind {
	var out [VisibleRows][Cols]Kind
	copy(out[:], b[BufferRows:])
	return out
}

// Heights returns, per column, the distance from the floor to the highest
// occupied cell, or 0 for an empty column.
func (b *Board) Heights() [Cols]int {
	var heights [Cols]int
	for x := 0; x < Cols; x++ {
		for y := 0; y < TotalRows; y++ {
			if b[y][x] != KindNone {
				heights[x] = TotalRows - y
				break
			}
		}
	}
	return heights
}

func (b *Board) AggregateHeight() int {
	total := 0
	for _, h := range b.Heights() {
		total += h
	}
	return total
}

// Holes counts empty cells that have an occupied cell somewhere above them
// in the same column.
func (b *Board) Holes() int {
	holes := 0
	for x := 0; x < Cols; x++ {
		covered := false
		for y := 0; y < TotalRows; y++ {
			if b[y][x] != KindNone {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// Bumpiness sums the absolute height difference of adjacent columns.
func (b *Board) Bumpiness() int {
	heights := b.Heights()
	total := 0
	for x := 0; x < Cols-1; x++ {
		d := heights[x] - heights[x+1]
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b {
		for _, cell := range b[y] {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
