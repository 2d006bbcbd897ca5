package model

import (
	"errors"
	"fmt"
)

const BoardSize = 8

var ErrInvalidSquare = errors.New("invalid square notation")

// Position is a square on the board. Row is the rank and Col the file,
// both counted from 1, so a1 is {1, 1} and h8 is {8, 8}.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 1 && p.Row <= BoardSize && p.Col >= 1 && p.Col <= BoardSize
}

// Offset returns the position shifted by dr rows and dc columns. The
// result may be off the board; check InBounds before using it.
func (p Position) Offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col-1, p.Row)
}

// ParsePosition reads a square in coordinate form such as "e2".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	p := Position{Row: int(rank-'1') + 1, Col: int(file-'a') + 1}
	if !p.InBounds() {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return p, nil
}
