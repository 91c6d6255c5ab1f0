package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tetris/config"
	"github.com/plus3/tetris/tetris"
	"go.uber.org/zap"
)

const (
	CellSize     = 28
	PreviewCell  = 16
	BoardX       = 140
	BoardY       = 20
	ScreenWidth  = BoardX*2 + tetris.Cols*CellSize
	ScreenHeight = BoardY*2 + tetris.VisibleRows*CellSize

	// Auto repeat for held movement keys, in ticks.
	repeatDelay    = 10
	repeatInterval = 2
)

var (
	backgroundColor = color.RGBA{18, 18, 24, 255}
	wellColor       = color.RGBA{30, 30, 40, 255}
	gridColor       = color.RGBA{45, 45, 58, 255}
	hintColor       = color.NRGBA{255, 255, 255, 120}
)

var modeKeys = map[ebiten.Key]tetris.LockdownMode{
	ebiten.Key1: tetris.Classic,
	ebiten.Key2: tetris.Extended,
	ebiten.Key3: tetris.Infinite,
}

// Game hosts a tetris.Game inside ebiten. Update runs at 60 TPS, which is
// the rate the core's gravity and lockdown are measured in.
type Game struct {
	game     *tetris.Game
	log      *zap.Logger
	showHint bool
}

func play(cfg *config.Config, log *zap.Logger) error {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Tetris")
	ebiten.SetTPS(60)

	g := &Game{
		game: tetris.New(gameOptions(cfg, log)...),
		log:  log,
	}

	return ebiten.RunGame(g)
}

func fade(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, alpha}
}

func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.game.Restart()
		g.log.Info("restart")
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.game.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.showHint = !g.showHint
	}

	for key, mode := range modeKeys {
		if inpututil.IsKeyJustPressed(key) && g.game.Mode() != mode && g.game.SetLockdownMode(mode) {
			g.log.Info("lockdown mode", zap.Stringer("mode", mode))
		}
	}

	if repeating(ebiten.KeyLeft) {
		g.game.MoveLeft()
	}
	if repeating(ebiten.KeyRight) {
		g.game.MoveRight()
	}
	if d := inpututil.KeyPressDuration(ebiten.KeyDown); d > 0 && d%repeatInterval == 1 {
		g.game.SoftDrop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.game.RotateCW()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyControlLeft) {
		g.game.RotateCCW()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) || inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) {
		g.game.Hold()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.game.ApplyHint()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.game.HardDrop()
	}

	g.game.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s := g.game.Snapshot()

	vector.DrawFilledRect(screen, BoardX, BoardY, tetris.Cols*CellSize, tetris.VisibleRows*CellSize, wellColor, false)
	for y, row := range s.Board {
		for x, kind := range row {
			if kind == tetris.KindNone {
				vector.StrokeRect(screen, cellX(x), cellY(y), CellSize, CellSize, 1, gridColor, false)
				continue
			}
			drawCell(screen, cellX(x), cellY(y), CellSize, kind.Color())
		}
	}

	if g.showHint && !s.GameOver {
		if pl, ok := g.game.Hint(); ok {
			drawOutline(screen, pl.Shape, pl.Row, pl.Col, hintColor)
		}
	}

	if !s.GameOver {
		drawPieceAt(screen, s.Piece.Shape, s.GhostRow, s.Piece.Col, fade(s.Piece.Kind.Color(), 70))
		drawPieceAt(screen, s.Piece.Shape, s.Piece.Row, s.Piece.Col, s.Piece.Kind.Color())
	}

	ebitenutil.DebugPrintAt(screen, "HOLD", 20, BoardY)
	if s.Held != tetris.KindNone {
		var c color.Color = s.Held.Color()
		if !s.CanHold {
			c = fade(s.Held.Color(), 90)
		}
		drawPreview(screen, s.Held.SpawnShape(), 20, BoardY+20, c)
	}

	nextX := BoardX + tetris.Cols*CellSize + 20
	ebitenutil.DebugPrintAt(screen, "NEXT", nextX, BoardY)
	for i, kind := range s.Next {
		drawPreview(screen, kind.SpawnShape(), nextX, BoardY+20+i*3*PreviewCell, kind.Color())
	}

	status := fmt.Sprintf("SCORE %d\nLINES %d\nLEVEL %d\n\n%s\nlock %d/%d",
		s.Score, s.Lines, s.Level, s.Mode, s.LockTimer, s.LockMoves)
	ebitenutil.DebugPrintAt(screen, status, 20, BoardY+120)

	switch {
	case s.GameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nR to restart", BoardX+90, BoardY+260)
	case s.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", BoardX+110, BoardY+260)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.2f", ebiten.ActualTPS()), 20, ScreenHeight-40)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func cellX(col int) float32 { return float32(BoardX + col*CellSize) }
func cellY(row int) float32 { return float32(BoardY + row*CellSize) }

func drawCell(screen *ebiten.Image, x, y, size float32, c color.Color) {
	vector.DrawFilledRect(screen, x+1, y+1, size-2, size-2, c, false)
}

// drawPieceAt draws a shape whose top-left sits at a board row and column.
// Cells inside the hidden buffer are skipped.
func drawPieceAt(screen *ebiten.Image, shape tetris.Shape, row, col int, c color.Color) {
	for y, line := range shape {
		for x, filled := range line {
			vr := tetris.VisibleRow(row + y)
			if !filled || vr < 0 {
				continue
			}
			drawCell(screen, cellX(col+x), cellY(vr), CellSize, c)
		}
	}
}

func drawOutline(screen *ebiten.Image, shape tetris.Shape, row, col int, c color.Color) {
	for y, line := range shape {
		for x, filled := range line {
			vr := tetris.VisibleRow(row + y)
			if !filled || vr < 0 {
				continue
			}
			vector.StrokeRect(screen, cellX(col+x)+2, cellY(vr)+2, CellSize-4, CellSize-4, 2, c, false)
		}
	}
}

func drawPreview(screen *ebiten.Image, shape tetris.Shape, x, y int, c color.Color) {
	for row, line := range shape {
		for col, filled := range line {
			if filled {
				drawCell(screen, float32(x+col*PreviewCell), float32(y+row*PreviewCell), PreviewCell, c)
			}
		}
	}
}
