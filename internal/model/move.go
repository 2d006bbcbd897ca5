package model

import "fmt"

// Move is comparable: two moves are the same legal move only if start,
// end and promotion all match.
type Move struct {
	Start     Position  `json:"start"`
	End       Position  `json:"end"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func NewMove(start, end Position) Move {
	return Move{Start: start, End: end}
}

// String renders the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	return m.Start.String() + m.End.String() + m.Promotion.getPieceNotation()
}

// WSMove is a move as sent by clients, with squares in coordinate form.
type WSMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (m WSMove) ToMove() (Move, error) {
	from, err := ParsePosition(m.From)
	if err != nil {
		return Move{}, err
	}
	to, err := ParsePosition(m.To)
	if err != nil {
		return Move{}, err
	}
	move := NewMove(from, to)
	if m.Promotion != "" {
		pieceType, ok := ParsePieceType(m.Promotion)
		if !ok {
			return Move{}, fmt.Errorf("%w: unknown promotion piece %q", ErrIllegalMove, m.Promotion)
		}
		move.Promotion = pieceType
	}
	return move, nil
}
