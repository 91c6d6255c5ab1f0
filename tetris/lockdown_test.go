package tetris_test

import (
	"testing"

	"github.com/plus3/tetris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groundedGame(t *testing.T, mode tetris.LockdownMode) *tetris.Game {
	t.Helper()
	g := tetris.New(only(tetris.T), tetris.WithLockdownMode(mode))
	require.Equal(t, 20, ground(g))
	ticks, moves := g.LockTimer()
	require.Zero(t, ticks)
	require.Zero(t, moves)
	return g
}

// shuffle moves the grounded piece sideways, alternating direction.
func shuffle(t *testing.T, g *tetris.Game, n int) {
	t.Helper()
	if n%2 == 0 {
		require.True(t, g.MoveLeft())
	} else {
		require.True(t, g.MoveRight())
	}
}

func locked(g *tetris.Game) bool {
	return g.Stats().Pieces > 0
}

func TestLockdownClassic(t *testing.T) {
	t.Run("locks at tick 15", func(t *testing.T) {
		g := groundedGame(t, tetris.Classic)
		for range 14 {
			g.Tick()
		}
		assert.False(t, locked(g))
		ticks, _ := g.LockTimer()
		assert.Equal(t, 14, ticks)

		g.Tick()
		assert.True(t, locked(g))
	})

	t.Run("moves never reset the timer", func(t *testing.T) {
		g := groundedGame(t, tetris.Classic)
		for n := range 14 {
			shuffle(t, g, n)
			g.Tick()
		}
		assert.False(t, locked(g))

		shuffle(t, g, 14)
		g.Tick()
		assert.True(t, locked(g))
	})
}

func TestLockdownExtended(t *testing.T) {
	t.Run("locks at tick 30", func(t *testing.T) {
		g := groundedGame(t, tetris.Extended)
		for range 29 {
			g.Tick()
		}
		assert.False(t, locked(g))
		g.Tick()
		assert.True(t, locked(g))
	})

	t.Run("locks at the move cap", func(t *testing.T) {
		g := groundedGame(t, tetris.Extended)
		for n := range tetris.ExtendedMoveLimit - 1 {
			shuffle(t, g, n)
			for range 20 {
				g.Tick()
			}
		}
		assert.False(t, locked(g))
		_, moves := g.LockTimer()
		assert.Equal(t, tetris.ExtendedMoveLimit-1, moves)

		shuffle(t, g, 0)
		g.Tick()
		assert.True(t, locked(g))
	})

	t.Run("no resets past the move cap", func(t *testing.T) {
		g := groundedGame(t, tetris.Extended)
		for n := range tetris.ExtendedMoveLimit {
			shuffle(t, g, n)
		}
		_, moves := g.LockTimer()
		require.Equal(t, tetris.ExtendedMoveLimit, moves)

		shuffle(t, g, 0)
		_, moves = g.LockTimer()
		assert.Equal(t, tetris.ExtendedMoveLimit, moves, "moves past the cap are not counted")

		// Reach the cap under Classic with time on the clock, then switch.
		g = groundedGame(t, tetris.Classic)
		for range 5 {
			g.Tick()
		}
		for n := range tetris.ExtendedMoveLimit {
			shuffle(t, g, n)
		}
		require.True(t, g.SetLockdownMode(tetris.Extended))

		shuffle(t, g, 1)
		ticks, moves := g.LockTimer()
		assert.Equal(t, 5, ticks, "timer keeps counting after the cap")
		assert.Equal(t, tetris.ExtendedMoveLimit, moves)

		g.Tick()
		assert.True(t, locked(g))
	})

	t.Run("rotation on ground counts as a move", func(t *testing.T) {
		g := groundedGame(t, tetris.Extended)
		for range 20 {
			g.Tick()
		}
		require.True(t, g.RotateCW())
		ticks, moves := g.LockTimer()
		assert.Zero(t, ticks)
		assert.Equal(t, 1, moves)
		assert.Equal(t, 1, g.Stats().Kicks)
	})
}

func TestLockdownInfinite(t *testing.T) {
	g := groundedGame(t, tetris.Infinite)
	for n := range 500 {
		shuffle(t, g, n)
		g.Tick()
	}
	assert.False(t, locked(g))
	_, moves := g.LockTimer()
	assert.Equal(t, 500, moves)

	shuffle(t, g, 0)
	for range tetris.InfiniteLockTicks - 1 {
		g.Tick()
	}
	assert.False(t, locked(g))
	g.Tick()
	assert.True(t, locked(g))
}

func TestLockdownModeSwitch(t *testing.T) {
	g := groundedGame(t, tetris.Extended)
	for range 20 {
		g.Tick()
	}
	require.False(t, locked(g))

	g.SetLockdownMode(tetris.Classic)
	g.Tick()
	assert.True(t, locked(g))
}

func TestFallingResetsLockdown(t *testing.T) {
	var b tetris.Board
	b[30][0] = tetris.Z

	// Resting on a single cell ledge, then slid off it.
	g := tetris.New(tetris.WithBoard(b), only(tetris.T))
	for range 3 {
		require.True(t, g.MoveLeft())
	}
	require.Equal(t, 10, ground(g))
	for range 5 {
		g.Tick()
	}
	ticks, _ := g.LockTimer()
	require.Equal(t, 5, ticks)

	require.True(t, g.MoveRight())
	require.True(t, g.SoftDrop())
	ticks, moves := g.LockTimer()
	assert.Zero(t, ticks)
	assert.Zero(t, moves)
}

func TestParseLockdownMode(t *testing.T) {
	for _, mode := range []tetris.LockdownMode{tetris.Classic, tetris.Extended, tetris.Infinite} {
		got, err := tetris.ParseLockdownMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := tetris.ParseLockdownMode("sticky")
	assert.Error(t, err)
}
