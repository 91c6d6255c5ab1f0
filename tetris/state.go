package tetris

// Stats counts what happened during a session.
type Stats struct {
	Ticks  int
	Pieces int
	Kicks  int
	// Clears is indexed by the number of lines removed by one lock.
	Clears [5]int
}

// State is a read-only snapshot of everything a renderer needs.
type State struct {
	Board    [VisibleRows][Cols]Kind
	Piece    Piece
	GhostRow int
	Held     Kind
	CanHold  bool
	Next     []Kind

	Score int
	Lines int
	Level int

	Mode      LockdownMode
	LockTimer int
	LockMoves int

	Paused   bool
	GameOver bool

	Stats Stats
}

// VisibleRow converts a board row to a row of State.Board. Negative results
// are inside the hidden buffer.
func VisibleRow(row int) int {
	return row - BufferRows
}

// Snapshot copies the current game state.
func (g *Game) Snapshot() State {
	return State{
		Board:     g.board.Visible(),
		Piece:     g.Piece(),
		GhostRow:  g.GhostRow(),
		Held:      g.hold,
		CanHold:   g.CanHold(),
		Next:      g.queue.Peek(g.queue.Len()),
		Score:     g.score,
		Lines:     g.lines,
		Level:     g.Level(),
		Mode:      g.mode,
		LockTimer: g.lock.timer,
		LockMoves: g.lock.moves,
		Paused:    g.paused,
		GameOver:  g.over,
		Stats:     g.stats,
	}
}
