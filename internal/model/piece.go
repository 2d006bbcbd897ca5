package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// pawnDirection is the row step a pawn of this color advances by.
func (c Color) pawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) homeRow() int {
	if c == White {
		return 1
	}
	return BoardSize
}

func (c Color) pawnStartRow() int {
	if c == White {
		return 2
	}
	return BoardSize - 1
}

func (c Color) promotionRow() int {
	return c.Opponent().homeRow()
}

type PieceType string

const (
	NoPieceType PieceType = ""
	King        PieceType = "king"
	Queen       PieceType = "queen"
	Rook        PieceType = "rook"
	Bishop      PieceType = "bishop"
	Knight      PieceType = "knight"
	Pawn        PieceType = "pawn"
)

// PromotionTypes lists the pieces a pawn may promote to.
var PromotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

func (p PieceType) IsPromotion() bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	}
	return ""
}

// ParsePieceType accepts a full name ("queen") or a single letter ("q").
func ParsePieceType(s string) (PieceType, bool) {
	for _, t := range [...]PieceType{King, Queen, Rook, Bishop, Knight, Pawn} {
		if s == string(t) || s == t.getPieceNotation() {
			return t, true
		}
	}
	return NoPieceType, false
}

// Piece is a value; the zero Piece marks an empty square. Moving a piece
// replaces it with a copy that has HasMoved set.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func NewPiece(color Color, pieceType PieceType) Piece {
	return Piece{Type: pieceType, Color: color}
}

func (p Piece) IsZero() bool {
	return p.Type == NoPieceType
}

// Same reports whether p and other are the same kind of piece, ignoring
// HasMoved.
func (p Piece) Same(other Piece) bool {
	return p.Color == other.Color && p.Type == other.Type
}

func (p Piece) moved() Piece {
	p.HasMoved = true
	return p
}
