package model

import "encoding/json"

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is a plain 8x8 grid. It holds no rules; assigning a Board copies it.
type Board struct {
	squares [BoardSize][BoardSize]Piece
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// NewStartingBoard returns a board in the standard initial position.
func NewStartingBoard() Board {
	var b Board
	b.ResetBoard()
	return b
}

// ResetBoard places the standard initial position, clearing everything else.
func (b *Board) ResetBoard() {
	*b = Board{}
	for col := 1; col <= BoardSize; col++ {
		b.AddPiece(Position{Row: White.homeRow(), Col: col}, NewPiece(White, backRank[col-1]))
		b.AddPiece(Position{Row: White.pawnStartRow(), Col: col}, NewPiece(White, Pawn))
		b.AddPiece(Position{Row: Black.pawnStartRow(), Col: col}, NewPiece(Black, Pawn))
		b.AddPiece(Position{Row: Black.homeRow(), Col: col}, NewPiece(Black, backRank[col-1]))
	}
}

// Piece returns the piece on pos and whether the square is occupied.
// Out-of-bounds positions are reported empty.
func (b *Board) Piece(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}
	p := b.squares[pos.Row-1][pos.Col-1]
	return p, !p.IsZero()
}

// AddPiece puts piece on pos, replacing whatever was there. Off-board
// positions are ignored.
func (b *Board) AddPiece(pos Position, piece Piece) {
	if !pos.InBounds() {
		return
	}
	b.squares[pos.Row-1][pos.Col-1] = piece
}

func (b *Board) ClearPosition(pos Position) {
	b.AddPiece(pos, Piece{})
}

func (b *Board) isEmpty(pos Position) bool {
	_, ok := b.Piece(pos)
	return !ok
}

// KingPosition finds the king of color.
func (b *Board) KingPosition(color Color) (Position, bool) {
	for _, pos := range b.positionsOf(color) {
		if p, _ := b.Piece(pos); p.Type == King {
			return pos, true
		}
	}
	return Position{}, false
}

// positionsOf lists the squares holding pieces of color, a1 first.
func (b *Board) positionsOf(color Color) []Position {
	positions := make([]Position, 0, 2*BoardSize)
	for row := 1; row <= BoardSize; row++ {
		for col := 1; col <= BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			if p, ok := b.Piece(pos); ok && p.Color == color {
				positions = append(positions, pos)
			}
		}
	}
	return positions
}

// MarshalJSON encodes the board as rows of pieces, rank 1 first, with
// null for empty squares.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, BoardSize)
	for r := range b.squares {
		rows[r] = make([]*Piece, BoardSize)
		for c := range b.squares[r] {
			if p := b.squares[r][c]; !p.IsZero() {
				rows[r][c] = &p
			}
		}
	}
	return json.Marshal(rows)
}
