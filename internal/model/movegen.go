package model

import "golang.org/x/exp/constraints"

type direction struct {
	dr, dc int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, bishopDirs...), rookDirs...)
	kingDirs   = queenDirs
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// PseudoLegalMoves returns the moves the piece on pos can make by its
// movement pattern alone, without regard to check. Castling and en passant
// depend on game history and are added by Game. An empty square yields
// no moves.
func PseudoLegalMoves(b *Board, pos Position) []Move {
	piece, ok := b.Piece(pos)
	if !ok {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, pos, piece)
	case Knight:
		return stepMoves(b, pos, piece, knightDirs)
	case Bishop:
		return slidingMoves(b, pos, piece, bishopDirs)
	case Rook:
		return slidingMoves(b, pos, piece, rookDirs)
	case Queen:
		return slidingMoves(b, pos, piece, queenDirs)
	case King:
		return stepMoves(b, pos, piece, kingDirs)
	default:
		return nil
	}
}

// slidingMoves walks each direction until it leaves the board or hits a
// piece; an enemy piece ends the ray with a capture.
func slidingMoves(b *Board, from Position, piece Piece, dirs []direction) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		target := from.Offset(dir.dr, dir.dc)
		for target.InBounds() {
			other, occupied := b.Piece(target)
			if !occupied {
				moves = append(moves, NewMove(from, target))
			} else {
				if other.Color != piece.Color {
					moves = append(moves, NewMove(from, target))
				}
				break
			}
			target = target.Offset(dir.dr, dir.dc)
		}
	}
	return moves
}

// stepMoves probes exactly one square per offset.
func stepMoves(b *Board, from Position, piece Piece, dirs []direction) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		target := from.Offset(dir.dr, dir.dc)
		if !target.InBounds() {
			continue
		}
		if other, occupied := b.Piece(target); !occupied || other.Color != piece.Color {
			moves = append(moves, NewMove(from, target))
		}
	}
	return moves
}

func pawnMoves(b *Board, from Position, piece Piece) []Move {
	moves := []Move{}
	dir := piece.Color.pawnDirection()

	// Forward one, and two from the starting rank
	one := from.Offset(dir, 0)
	if one.InBounds() && b.isEmpty(one) {
		moves = appendPawnMove(moves, from, one, piece.Color)
		two := from.Offset(2*dir, 0)
		if from.Row == piece.Color.pawnStartRow() && b.isEmpty(two) {
			moves = append(moves, NewMove(from, two))
		}
	}
	// Captures
	for _, dc := range [...]int{-1, 1} {
		target := from.Offset(dir, dc)
		if other, occupied := b.Piece(target); occupied && other.Color != piece.Color {
			moves = appendPawnMove(moves, from, target, piece.Color)
		}
	}
	return moves
}

// appendPawnMove adds one move per promotion type when the pawn lands on
// the last rank, and a plain move otherwise.
func appendPawnMove(moves []Move, from, to Position, color Color) []Move {
	if to.Row != color.promotionRow() {
		return append(moves, NewMove(from, to))
	}
	for _, promotion := range PromotionTypes {
		moves = append(moves, Move{Start: from, End: to, Promotion: promotion})
	}
	return moves
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
