// Package tetris implements the rules of a single-player falling-block
// puzzle: the playfield, the seven tetrominoes and their SRS rotation, the
// 7-bag randomizer, the lockdown state machine, scoring, and a heuristic
// hint engine that suggests a placement for the active piece.
//
// The package does no rendering and owns no clock. A host drives a Game by
// calling Tick once per frame and forwarding player commands between ticks.
package tetris

import (
	"fmt"
	"image/color"
)

// Kind identifies a tetromino. The zero value doubles as the empty board cell.
type Kind uint8

const (
	KindNone Kind = iota
	I
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every playable kind in catalog order.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

// Shape is a square occupancy matrix indexed [row][col].
type Shape [][]bool

// MaxShapeSize is the side of the largest shape matrix in the catalog.
const MaxShapeSize = 4

type definition struct {
	name  string
	shape Shape
	color color.RGBA
}

// Spawn orientations follow SRS: flat side down, pointing up.
var catalog = [...]definition{
	KindNone: {name: "."},
	I: {
		name: "I",
		shape: Shape{
			{false, false, false, false},
			{true, true, true, true},
			{false, false, false, false},
			{false, false, false, false},
		},
		color: color.RGBA{R: 0x00, G: 0xf0, B: 0xf0, A: 0xff},
	},
	O: {
		name: "O",
		shape: Shape{
			{true, true},
			{true, true},
		},
		color: color.RGBA{R: 0xf0, G: 0xf0, B: 0x00, A: 0xff},
	},
	T: {
		name: "T",
		shape: Shape{
			{false, true, false},
			{true, true, true},
			{false, false, false},
		},
		color: color.RGBA{R: 0xa0, G: 0x00, B: 0xf0, A: 0xff},
	},
	S: {
		name: "S",
		shape: Shape{
			{false, true, true},
			{true, true, false},
			{false, false, false},
		},
		color: color.RGBA{R: 0x00, G: 0xf0, B: 0x00, A: 0xff},
	},
	Z: {
		name: "Z",
		shape: Shape{
			{true, true, false},
			{false, true, true},
			{false, false, false},
		},
		color: color.RGBA{R: 0xf0, G: 0x00, B: 0x00, A: 0xff},
	},
	J: {
		name: "J",
		shape: Shape{
			{true, false, false},
			{true, true, true},
			{false, false, false},
		},
		color: color.RGBA{R: 0x00, G: 0x00, B: 0xf0, A: 0xff},
	},
	L: {
		name: "L",
		shape: Shape{
			{false, false, true},
			{true, true, true},
			{false, false, false},
		},
		color: color.RGBA{R: 0xf0, G: 0xa0, B: 0x00, A: 0xff},
	},
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= L
}

func (k Kind) String() string {
	if int(k) < len(catalog) {
		return catalog[k].name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Color returns the display color of k. It has no effect on game logic.
func (k Kind) Color() color.RGBA {
	if int(k) < len(catalog) {
		return catalog[k].color
	}
	return color.RGBA{}
}

// SpawnShape returns a fresh copy of the rotation-state-0 shape of k.
func (k Kind) SpawnShape() Shape {
	if !k.Valid() {
		return nil
	}
	return catalog[k].shape.Clone()
}

// ParseKind maps a single letter such as "T" to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if catalog[k].name == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown piece kind %q", s)
}

// Clone returns a deep copy of s.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i := range s {
		out[i] = make([]bool, len(s[i]))
		copy(out[i], s[i])
	}
	return out
}

// Equal reports whether s and other have identical occupancy.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Piece is the active, falling tetromino. Row and Col locate the top-left
// corner of Shape on the board.
type Piece struct {
	Kind     Kind
	Shape    Shape
	Rotation int
	Row      int
	Col      int
}

// Cells returns the board coordinates of every occupied cell of p as
// [row, col] pairs.
func (p Piece) Cells() [][2]int {
	cells := make([][2]int, 0, 4)
	for i := range p.Shape {
		for j, filled := range p.Shape[i] {
			if filled {
				cells = append(cells, [2]int{p.Row + i, p.Col + j})
			}
		}
	}
	return cells
}
