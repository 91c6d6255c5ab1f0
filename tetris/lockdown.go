package tetris

import "fmt"

// LockdownMode selects how a grounded piece is given time before it locks.
type LockdownMode int

const (
	// Extended lets on-ground moves reset the timer up to a move cap.
	Extended LockdownMode = iota
	// Classic locks on a fixed timer; moves never buy time.
	Classic
	// Infinite resets the timer on every on-ground move with no cap.
	Infinite
)

const (
	ClassicLockTicks  = 15
	ExtendedLockTicks = 30
	ExtendedMoveLimit = 15
	InfiniteLockTicks = 90
)

var lockdownNames = map[LockdownMode]string{
	Extended: "extended",
	Classic:  "classic",
	Infinite: "infinite",
}

func (m LockdownMode) String() string {
	if name, ok := lockdownNames[m]; ok {
		return name
	}
	return fmt.Sprintf("LockdownMode(%d)", int(m))
}

// ParseLockdownMode accepts the names returned by LockdownMode.String.
func ParseLockdownMode(s string) (LockdownMode, error) {
	for mode, name := range lockdownNames {
		if name == s {
			return mode, nil
		}
	}
	return Extended, fmt.Errorf("unknown lockdown mode %q", s)
}

// lockdown tracks the grace period of the active piece.
type lockdown struct {
	timer int
	moves int
}

func (l *lockdown) reset() {
	l.timer = 0
	l.moves = 0
}

// onGroundMove applies a successful move or rotation that left the piece
// resting on the stack.
func (l *lockdown) onGroundMove(mode LockdownMode) {
	switch mode {
	case Classic:
		l.moves++
	case Extended:
		if l.moves < ExtendedMoveLimit {
			l.timer = 0
			l.moves++
		}
	case Infinite:
		l.timer = 0
		l.moves++
	}
}

// expired reports whether the piece must lock now.
func (l *lockdown) expired(mode LockdownMode) bool {
	switch mode {
	case Classic:
		return l.timer >= ClassicLockTicks
	case Infinite:
		return l.timer >= InfiniteLockTicks
	default:
		return l.timer >= ExtendedLockTicks || l.moves >= ExtendedMoveLimit
	}
}
