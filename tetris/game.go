package tetris

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Source deals piece kinds to a Queue. *Bag is the standard Source.
type Source interface {
	Draw() Kind
}

// gravityTicks is the number of ticks between automatic one-row falls at
// 60 ticks per second, indexed by level-1. Levels past the end reuse the
// last entry.
var gravityTicks = [...]int{60, 48, 37, 28, 21, 16, 11, 8, 6, 4, 3, 2, 1, 1, 1}

// MaxLevel is the highest level in the speed table.
const MaxLevel = len(gravityTicks)

// lineScores is the base award per lock indexed by lines cleared.
var lineScores = [...]int{0, 100, 300, 500, 800}

const (
	softDropPoints = 1
	hardDropPoints = 2
	linesPerLevel  = 10
)

// Game owns the board, the active piece and every counter of one session.
// It is not safe for concurrent use.
type Game struct {
	board   Board
	piece   Piece
	queue   *Queue
	source  Source
	hold    Kind
	canHold bool

	mode LockdownMode
	lock lockdown
	fall int

	score        int
	lines        int
	initialLines int

	paused bool
	over   bool

	preview int
	weights Weights
	stats   Stats

	newSource func() Source
	initial   *Board
	log       *zap.Logger
}

// Option configures a Game at construction.
type Option func(*Game)

// WithSeed makes the 7-bag deterministic. Every session, including one
// started by Restart, deals the same sequence.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.newSource = func() Source {
			return NewBag(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
		}
	}
}

// WithRand shuffles bags with rng. Restart keeps drawing from the same
// stream, so later sessions continue it rather than repeat it.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.newSource = func() Source { return NewBag(rng) }
	}
}

// WithSource replaces the 7-bag with src. Restart keeps drawing from the
// same src.
func WithSource(src Source) Option {
	return func(g *Game) {
		g.newSource = func() Source { return src }
	}
}

func WithLockdownMode(mode LockdownMode) Option {
	return func(g *Game) {
		g.mode = mode
	}
}

// WithPreview sets how many upcoming kinds are exposed. Values below
// MinPreview are raised to it.
func WithPreview(n int) Option {
	return func(g *Game) {
		g.preview = n
	}
}

// WithInitialLines starts the session as if n lines had already been
// cleared, which raises the starting level.
func WithInitialLines(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.initialLines = n
		}
	}
}

// WithBoard starts every session from a copy of b instead of an empty board.
func WithBoard(b Board) Option {
	return func(g *Game) {
		g.initial = &b
	}
}

func WithWeights(w Weights) Option {
	return func(g *Game) {
		g.weights = w
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(g *Game) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a game and spawns its first piece.
func New(opts ...Option) *Game {
	g := &Game{
		mode:    Extended,
		preview: 5,
		weights: DefaultWeights,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.newSource == nil {
		WithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))(g)
	}

	g.reset()
	return g
}

// Restart discards the current session and starts a new one with the same
// options. It is the only command accepted after game over.
func (g *Game) Restart() {
	g.reset()
}

func (g *Game) reset() {
	if g.initial != nil {
		g.board = *g.initial
	} else {
		g.board = Board{}
	}
	g.source = g.newSource()
	g.queue = NewQueue(g.source, g.preview)
	g.hold = KindNone
	g.score = 0
	g.lines = g.initialLines
	g.paused = false
	g.over = false
	g.stats = Stats{}

	g.spawn(g.queue.Pop())
}

func (g *Game) active() bool {
	return !g.paused && !g.over
}

func spawnPiece(kind Kind) Piece {
	p := Piece{
		Kind:  kind,
		Shape: kind.SpawnShape(),
		Row:   BufferRows - 2,
		Col:   3,
	}
	switch kind {
	case O:
		p.Col = 4
	case I:
		// The I matrix carries its cells on its second row.
		p.Row--
	}
	return p
}

// spawn makes kind the active piece. A blocked spawn ends the game.
func (g *Game) spawn(kind Kind) bool {
	p := spawnPiece(kind)
	g.piece = p
	g.lock.reset()
	g.fall = 0
	g.canHold = true

	if g.board.Collides(p.Shape, p.Row, p.Col) {
		g.over = true
		g.log.Info("game over",
			zap.Stringer("kind", kind),
			zap.Int("score", g.score),
			zap.Int("lines", g.lines),
			zap.Int("pieces", g.stats.Pieces),
		)
		return false
	}

	g.log.Debug("spawn", zap.Stringer("kind", kind), zap.Int("row", p.Row), zap.Int("col", p.Col))
	return true
}

func (g *Game) onGround() bool {
	return g.board.Collides(g.piece.Shape, g.piece.Row+1, g.piece.Col)
}

// Gravity returns the current number of ticks per automatic fall.
func (g *Game) Gravity() int {
	idx := g.Level() - 1
	if idx >= len(gravityTicks) {
		idx = len(gravityTicks) - 1
	}
	return gravityTicks[idx]
}

// Tick advances the game by one frame: gravity, then lockdown accounting.
func (g *Game) Tick() {
	if !g.active() {
		return
	}
	g.stats.Ticks++

	g.fall++
	if g.fall >= g.Gravity() {
		g.fall = 0
		g.shift(1, 0)
	}

	if !g.onGround() {
		return
	}

	g.lock.timer++
	if g.lock.expired(g.mode) {
		g.lockPiece()
	}
}

// shift moves the active piece when the target is free and keeps lockdown
// in step with the new position.
func (g *Game) shift(dRow, dCol int) bool {
	row, col := g.piece.Row+dRow, g.piece.Col+dCol
	if g.board.Collides(g.piece.Shape, row, col) {
		return false
	}

	g.piece.Row, g.piece.Col = row, col
	if dRow > 0 {
		g.lock.reset()
	} else if g.onGround() {
		g.lock.onGroundMove(g.mode)
	}
	return true
}

// Move translates the active piece one step: dRow is 0 or 1 (down) and
// dCol is -1, 0 or 1. Any other delta is rejected. A step down scores as a
// soft drop.
func (g *Game) Move(dRow, dCol int) bool {
	if !g.active() || dRow < 0 || dRow > 1 || dCol < -1 || dCol > 1 {
		return false
	}
	if !g.shift(dRow, dCol) {
		return false
	}

	g.score += dRow * softDropPoints
	return true
}

func (g *Game) MoveLeft() bool { return g.Move(0, -1) }
func (g *Game) MoveRight() bool { return g.Move(0, 1) }
func (g *Game) SoftDrop() bool { return g.Move(1, 0) }

func (g *Game) RotateCW() bool { return g.rotate(true) }
func (g *Game) RotateCCW() bool { return g.rotate(false) }

func (g *Game) rotate(clockwise bool) bool {
	if !g.active() {
		return false
	}

	res, ok := Rotate(&g.board, g.piece, clockwise)
	if !ok {
		return false
	}
	if g.piece.Kind == O {
		return true
	}

	g.piece = res.Piece
	if res.Kick > 0 {
		g.stats.Kicks++
		g.log.Debug("wall kick",
			zap.Stringer("kind", g.piece.Kind),
			zap.Int("rotation", g.piece.Rotation),
			zap.Int("kick", res.Kick),
		)
	}
	if g.onGround() {
		g.lock.onGroundMove(g.mode)
	}
	return true
}

// HardDrop drops the active piece to its ghost row and locks it at once.
func (g *Game) HardDrop() bool {
	if !g.active() {
		return false
	}

	ghost := g.board.GhostRow(g.piece.Shape, g.piece.Row, g.piece.Col)
	g.score += (ghost - g.piece.Row) * hardDropPoints
	g.piece.Row = ghost
	g.lockPiece()
	return true
}

func (g *Game) lockPiece() {
	p := g.piece
	g.board.Lock(p.Shape, p.Row, p.Col, p.Kind)
	g.stats.Pieces++

	cleared := g.board.ClearFullLines()
	if n := len(cleared); n > 0 {
		g.lines += n
		award := lineScores[n] * g.Level()
		g.score += award
		g.stats.Clears[n]++
		g.log.Debug("lines cleared",
			zap.Ints("rows", cleared),
			zap.Int("award", award),
			zap.Int("lines", g.lines),
			zap.Int("level", g.Level()),
		)
	}

	g.log.Debug("lock",
		zap.Stringer("kind", p.Kind),
		zap.Int("row", p.Row),
		zap.Int("col", p.Col),
		zap.Int("rotation", p.Rotation),
	)

	g.spawn(g.queue.Pop())
}

// Hold stashes the active kind. An empty slot pulls the next queued piece;
// otherwise the held kind comes back without consuming the queue. Only one
// hold is allowed per spawned piece.
func (g *Game) Hold() bool {
	if !g.active() || !g.canHold {
		return false
	}

	next := g.hold
	g.hold = g.piece.Kind
	if next == KindNone {
		next = g.queue.Pop()
	}

	g.log.Debug("hold", zap.Stringer("held", g.hold), zap.Stringer("next", next))
	g.spawn(next)
	g.canHold = false
	return true
}

// TogglePause freezes or resumes ticking and input. It fails after game over.
func (g *Game) TogglePause() bool {
	if g.over {
		return false
	}
	g.paused = !g.paused
	return true
}

// SetLockdownMode switches the lockdown policy; it takes effect on the next
// move or tick, including for the piece already falling. It is ignored
// after game over.
func (g *Game) SetLockdownMode(mode LockdownMode) bool {
	if g.over {
		return false
	}
	g.mode = mode
	return true
}

// Hint evaluates every placement of the active piece on the current board.
func (g *Game) Hint() (Placement, bool) {
	if g.over {
		return Placement{}, false
	}
	return Evaluate(&g.board, g.piece, g.weights)
}

// ApplyHint moves the active piece to the suggested rotation and column
// without dropping it, and restarts its lockdown.
func (g *Game) ApplyHint() bool {
	if !g.active() {
		return false
	}

	pl, ok := Evaluate(&g.board, g.piece, g.weights)
	if !ok {
		return false
	}

	g.piece.Shape = pl.Shape
	g.piece.Rotation = pl.Rotation
	g.piece.Col = pl.Col
	g.lock.reset()
	return true
}

// Level is derived from the cleared line count.
func (g *Game) Level() int {
	return g.lines/linesPerLevel + 1
}

func (g *Game) Score() int { return g.score }
func (g *Game) Lines() int { return g.lines }
func (g *Game) Paused() bool { return g.paused }
func (g *Game) Over() bool { return g.over }
func (g *Game) Mode() LockdownMode { return g.mode }
func (g *Game) Held() Kind { return g.hold }
func (g *Game) CanHold() bool { return g.canHold && !g.over }
func (g *Game) Next(n int) []Kind { return g.queue.Peek(n) }
func (g *Game) Stats() Stats { return g.stats }
func (g *Game) LockTimer() (ticks, moves int) { return g.lock.timer, g.lock.moves }

// Board returns a copy of the full board including the hidden buffer.
func (g *Game) Board() Board {
	return g.board
}

// Piece returns a copy of the active piece.
func (g *Game) Piece() Piece {
	p := g.piece
	p.Shape = p.Shape.Clone()
	return p
}

// GhostRow is the row the active piece would land on if hard dropped.
func (g *Game) GhostRow() int {
	return g.board.GhostRow(g.piece.Shape, g.piece.Row, g.piece.Col)
}
