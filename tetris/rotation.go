package tetris

// Offset is a wall-kick translation in SRS convention: DX grows to the
// right and DY grows upward, the opposite of board rows.
type Offset struct {
	DX, DY int
}

// Kick tables indexed by [from][clockwise?0:1]. The first entry is always
// the unkicked rotation.
var jlstzKicks = [4][2][5]Offset{
	0: {
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 0->R
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 0->L
	},
	1: {
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // R->2
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // R->0
	},
	2: {
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 2->L
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 2->R
	},
	3: {
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // L->0
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // L->2
	},
}

var iKicks = [4][2][5]Offset{
	0: {
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // 0->R
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // 0->L
	},
	1: {
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // R->2
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // R->0
	},
	2: {
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // 2->L
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // 2->R
	},
	3: {
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // L->0
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // L->2
	},
}

// RotateShape returns shape turned 90 degrees. The input is not modified.
func RotateShape(shape Shape, clockwise bool) Shape {
	size := len(shape)
	rotated := make(Shape, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}

	for i := range size {
		for j := range size {
			if clockwise {
				rotated[j][size-1-i] = shape[i][j]
			} else {
				rotated[size-1-j][i] = shape[i][j]
			}
		}
	}

	return rotated
}

// NextRotation returns the rotation state reached from state by one turn.
func NextRotation(state int, clockwise bool) int {
	if clockwise {
		return (state + 1) % 4
	}
	return (state + 3) % 4
}

// Kicks returns the ordered kick candidates for rotating kind out of
// rotation state from. O has no kicks.
func Kicks(kind Kind, from int, clockwise bool) []Offset {
	dir := 0
	if !clockwise {
		dir = 1
	}

	switch kind {
	case O, KindNone:
		return nil
	case I:
		return iKicks[from&3][dir][:]
	default:
		return jlstzKicks[from&3][dir][:]
	}
}

// RotateResult describes an accepted rotation.
type RotateResult struct {
	Piece Piece
	// Kick is the index of the accepted kick candidate, 0 for a plain turn.
	Kick int
}

// Rotate tries to turn p on board, walking the SRS kick list in order. It
// returns false and leaves p untouched when every candidate collides. The
// O piece always succeeds without changing.
func Rotate(board *Board, p Piece, clockwise bool) (RotateResult, bool) {
	if p.Kind == O {
		return RotateResult{Piece: p}, true
	}

	shape := RotateShape(p.Shape, clockwise)
	for i, kick := range Kicks(p.Kind, p.Rotation, clockwise) {
		row := p.Row - kick.DY
		col := p.Col + kick.DX
		if board.Collides(shape, row, col) {
			continue
		}

		return RotateResult{
			Piece: Piece{
				Kind:     p.Kind,
				Shape:    shape,
				Rotation: NextRotation(p.Rotation, clockwise),
				Row:      row,
				Col:      col,
			},
			Kick: i,
		}, true
	}

	return RotateResult{Piece: p}, false
}
