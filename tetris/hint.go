package tetris

// Weights are the coefficients of the placement heuristic.
type Weights struct {
	AggregateHeight float64
	CompletedLines  float64
	Holes           float64
	Bumpiness       float64
}

var DefaultWeights = Weights{
	AggregateHeight: -0.51,
	CompletedLines:  0.76,
	Holes:           -0.36,
	Bumpiness:       -0.18,
}

// Features are the board measurements fed into Weights.
type Features struct {
	AggregateHeight int
	CompletedLines  int
	Holes           int
	Bumpiness       int
}

// Measure computes the heuristic features of b as it stands, without
// clearing full rows.
func Measure(b *Board) Features {
	return Features{
		AggregateHeight: b.AggregateHeight(),
		CompletedLines:  len(b.FullRows()),
		Holes:           b.Holes(),
		Bumpiness:       b.Bumpiness(),
	}
}

func (w Weights) Score(f Features) float64 {
	return w.AggregateHeight*float64(f.AggregateHeight) +
		w.CompletedLines*float64(f.CompletedLines) +
		w.Holes*float64(f.Holes) +
		w.Bumpiness*float64(f.Bumpiness)
}

// Placement is a candidate resting position for a piece.
type Placement struct {
	Rotation int
	Col      int
	// Row is where the piece lands once dropped from its current row.
	Row      int
	Shape    Shape
	Score    float64
	Features Features
}

// hintOverscan lets anchors start left of the board so shapes with empty
// leading columns can still reach column 0.
const hintOverscan = MaxShapeSize - 1

// Evaluate tries every rotation state of p and every anchor column, drops
// each from p's current row, and returns the best scoring placement. Ties
// keep the first candidate in rotation-then-column order. It reports false
// when no placement exists. board is not modified.
func Evaluate(board *Board, p Piece, w Weights) (Placement, bool) {
	rotations := 4
	if p.Kind == O {
		rotations = 1
	}

	var (
		best  Placement
		found bool
	)

	shape := p.Kind.SpawnShape()
	for rot := 0; rot < rotations; rot++ {
		if rot > 0 {
			shape = RotateShape(shape, true)
		}

		for col := -hintOverscan; col < Cols; col++ {
			if board.Collides(shape, p.Row, col) {
				continue
			}

			row := board.GhostRow(shape, p.Row, col)
			sim := *board
			sim.Lock(shape, row, col, p.Kind)

			features := Measure(&sim)
			score := w.Score(features)
			if !found || score > best.Score {
				best = Placement{
					Rotation: rot,
					Col:      col,
					Row:      row,
					Shape:    shape,
					Score:    score,
					Features: features,
				}
				found = true
			}
		}
	}

	if found {
		best.Shape = best.Shape.Clone()
	}
	return best, found
}
