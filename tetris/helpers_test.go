package tetris_test

import "github.com/plus3/tetris/tetris"

// cycle deals kinds in order forever.
type cycle struct {
	kinds []tetris.Kind
	draws int
}

func (c *cycle) Draw() tetris.Kind {
	k := c.kinds[c.draws%len(c.kinds)]
	c.draws++
	return k
}

func only(kinds ...tetris.Kind) tetris.Option {
	return tetris.WithSource(&cycle{kinds: kinds})
}

// fillRows marks every cell of rows as occupied, skipping the listed gap
// columns.
func fillRows(b *tetris.Board, rows []int, gap ...int) {
	skip := make(map[int]bool, len(gap))
	for _, c := range gap {
		skip[c] = true
	}
	for _, y := range rows {
		for x := 0; x < tetris.Cols; x++ {
			if !skip[x] {
				b[y][x] = tetris.S
			}
		}
	}
}

func rowRange(from, to int) []int {
	rows := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		rows = append(rows, y)
	}
	return rows
}

// ground soft drops the active piece until it rests on the stack.
func ground(g *tetris.Game) int {
	n := 0
	for g.SoftDrop() {
		n++
	}
	return n
}
