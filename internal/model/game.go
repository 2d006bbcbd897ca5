package model

import (
	"fmt"
	"slices"
)

// Outcome is the result of a game. NoOutcome means the game is in progress.
type Outcome string

const (
	NoOutcome Outcome = ""
	WhiteWins Outcome = "white_wins"
	BlackWins Outcome = "black_wins"
	Draw      Outcome = "draw"
)

func winFor(color Color) Outcome {
	if color == White {
		return WhiteWins
	}
	return BlackWins
}

// Method is how the outcome came about.
type Method string

const (
	NoMethod      Method = ""
	Checkmate     Method = "checkmate"
	Stalemate     Method = "stalemate"
	Resignation   Method = "resignation"
	DrawAgreement Method = "agreement"
)

// Game applies the rules of chess to a single board. It does no locking;
// callers sharing a Game between goroutines must serialize access.
type Game struct {
	board    Board
	turn     Color
	lastMove *Move
	outcome  Outcome
	method   Method
}

type GameState struct {
	Board    Board   `json:"board"`
	ToMove   Color   `json:"toMove"`
	IsCheck  bool    `json:"isCheck"`
	Outcome  Outcome `json:"outcome"`
	Method   Method  `json:"method"`
	LastMove *Move   `json:"lastMove"`
}

// NewGame starts a game from the standard position with white to move.
func NewGame() *Game {
	return NewGameFromBoard(NewStartingBoard(), White)
}

// NewGameFromBoard starts a game from an arbitrary position.
func NewGameFromBoard(board Board, turn Color) *Game {
	return &Game{
		board: board,
		turn:  turn,
	}
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) Outcome() Outcome {
	return g.outcome
}

func (g *Game) Method() Method {
	return g.method
}

func (g *Game) IsOver() bool {
	return g.outcome != NoOutcome
}

func (g *Game) LastMove() (Move, bool) {
	if g.lastMove == nil {
		return Move{}, false
	}
	return *g.lastMove, true
}

func (g *Game) State() GameState {
	state := GameState{
		Board:   g.board,
		ToMove:  g.turn,
		IsCheck: g.IsInCheck(g.turn),
		Outcome: g.outcome,
		Method:  g.method,
	}
	if last, ok := g.LastMove(); ok {
		state.LastMove = &last
	}
	return state
}

// ValidMoves returns every legal move for the piece on pos. It is empty
// when the square is empty or the piece cannot move.
func (g *Game) ValidMoves(pos Position) []Move {
	piece, ok := g.board.Piece(pos)
	if !ok {
		return []Move{}
	}
	moves := g.filterLegalMoves(piece.Color, PseudoLegalMoves(&g.board, pos))
	switch piece.Type {
	case Pawn:
		moves = append(moves, g.filterLegalMoves(piece.Color, g.enPassantMoves(pos, piece))...)
	case King:
		moves = append(moves, g.castleMoves(pos, piece)...)
	}
	return moves
}

// MakeMove validates and plays move for the side to move. On error the
// game is left untouched.
func (g *Game) MakeMove(move Move) error {
	piece, ok := g.board.Piece(move.Start)
	if !ok {
		return fmt.Errorf("%w: no piece at %s", ErrIllegalMove, move.Start)
	}
	if piece.Color != g.turn {
		return fmt.Errorf("%w: %s to move, piece at %s is %s", ErrIllegalMove, g.turn, move.Start, piece.Color)
	}
	if !slices.Contains(g.ValidMoves(move.Start), move) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}

	g.executeMove(move)
	return nil
}

func (g *Game) executeMove(move Move) {
	applyMove(&g.board, move)
	if moved, ok := g.board.Piece(move.End); ok {
		g.board.AddPiece(move.End, moved.moved())
	}
	g.lastMove = &move
	g.switchTurn()

	// The side now to move is the one that may be mated
	if g.IsInCheckmate(g.turn) {
		g.outcome = winFor(g.turn.Opponent())
		g.method = Checkmate
	} else if g.IsInStalemate(g.turn) {
		g.outcome = Draw
		g.method = Stalemate
	}
}

func (g *Game) switchTurn() {
	g.turn = g.turn.Opponent()
}

// Resign ends the game in favour of color's opponent.
func (g *Game) Resign(color Color) error {
	if g.IsOver() {
		return ErrGameOver
	}
	g.outcome = winFor(color.Opponent())
	g.method = Resignation
	return nil
}

// AgreeDraw ends the game as a draw by agreement.
func (g *Game) AgreeDraw() error {
	if g.IsOver() {
		return ErrGameOver
	}
	g.outcome = Draw
	g.method = DrawAgreement
	return nil
}

func (g *Game) IsInCheck(color Color) bool {
	return isKingInCheck(&g.board, color)
}

func (g *Game) IsInCheckmate(color Color) bool {
	return g.IsInCheck(color) && g.isNoLegalMoves(color)
}

// IsInStalemate reports whether color has no legal move while not in
// check. A side that is in check with no legal move is mated, not
// stalemated, so this is never true together with IsInCheckmate.
func (g *Game) IsInStalemate(color Color) bool {
	return !g.IsInCheck(color) && g.isNoLegalMoves(color)
}

func (g *Game) isNoLegalMoves(color Color) bool {
	for _, pos := range g.board.positionsOf(color) {
		if len(g.ValidMoves(pos)) > 0 {
			return false
		}
	}
	return true
}

// filterLegalMoves drops moves that leave color's king attacked. Each
// candidate is played on a copy of the board.
func (g *Game) filterLegalMoves(color Color, pseudoMoves []Move) []Move {
	legalMoves := []Move{}
	for _, move := range pseudoMoves {
		sim := g.board
		applyMove(&sim, move)
		if !isKingInCheck(&sim, color) {
			legalMoves = append(legalMoves, move)
		}
	}
	return legalMoves
}

// enPassantMoves finds captures of a pawn that has just advanced two
// squares to stand beside the pawn on pos.
func (g *Game) enPassantMoves(pos Position, pawn Piece) []Move {
	if g.lastMove == nil || abs(g.lastMove.End.Row-g.lastMove.Start.Row) != 2 {
		return nil
	}
	moves := []Move{}
	for _, dc := range [...]int{-1, 1} {
		beside := pos.Offset(0, dc)
		if beside != g.lastMove.End {
			continue
		}
		other, ok := g.board.Piece(beside)
		if !ok || other.Type != Pawn || other.Color == pawn.Color {
			continue
		}
		moves = append(moves, NewMove(pos, beside.Offset(pawn.Color.pawnDirection(), 0)))
	}
	return moves
}

type castleSide struct {
	rookCol, kingCol int
}

var castleSides = [...]castleSide{
	{rookCol: 8, kingCol: 7},
	{rookCol: 1, kingCol: 3},
}

const kingHomeCol = 5

func (g *Game) castleMoves(pos Position, king Piece) []Move {
	home := Position{Row: king.Color.homeRow(), Col: kingHomeCol}
	if king.HasMoved || pos != home {
		return nil
	}
	moves := []Move{}
	for _, side := range castleSides {
		rookPos := Position{Row: home.Row, Col: side.rookCol}
		rook, ok := g.board.Piece(rookPos)
		if !ok || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		if !g.isPathClear(home, rookPos) || !g.isKingPathSafe(home, king, side.kingCol) {
			continue
		}
		moves = append(moves, NewMove(home, Position{Row: home.Row, Col: side.kingCol}))
	}
	return moves
}

// isPathClear reports whether every square strictly between from and to
// on the same row is empty.
func (g *Game) isPathClear(from, to Position) bool {
	step := 1
	if to.Col < from.Col {
		step = -1
	}
	for col := from.Col + step; col != to.Col; col += step {
		if !g.board.isEmpty(Position{Row: from.Row, Col: col}) {
			return false
		}
	}
	return true
}

// isKingPathSafe checks the king's home square, each square it crosses
// and its destination for attacks.
func (g *Game) isKingPathSafe(home Position, king Piece, destCol int) bool {
	if g.IsInCheck(king.Color) {
		return false
	}
	step := 1
	if destCol < home.Col {
		step = -1
	}
	for col := home.Col + step; ; col += step {
		sim := g.board
		sim.ClearPosition(home)
		sim.AddPiece(Position{Row: home.Row, Col: col}, king)
		if isKingInCheck(&sim, king.Color) {
			return false
		}
		if col == destCol {
			return true
		}
	}
}

// applyMove relocates pieces for move without checking any rule,
// including the rook for castling and the captured pawn for en passant.
func applyMove(b *Board, move Move) {
	piece, ok := b.Piece(move.Start)
	if !ok {
		return
	}
	switch piece.Type {
	case Pawn:
		if move.Start.Col != move.End.Col && b.isEmpty(move.End) {
			// En passant: the captured pawn stands beside the origin
			b.ClearPosition(Position{Row: move.Start.Row, Col: move.End.Col})
		}
	case King:
		if abs(move.End.Col-move.Start.Col) == 2 {
			rookFrom, rookTo := castleRookSquares(move)
			if rook, ok := b.Piece(rookFrom); ok {
				b.ClearPosition(rookFrom)
				b.AddPiece(rookTo, rook.moved())
			}
		}
	}
	b.ClearPosition(move.Start)
	if move.Promotion != NoPieceType {
		piece.Type = move.Promotion
		piece.HasMoved = true
	}
	b.AddPiece(move.End, piece)
}

func castleRookSquares(kingMove Move) (from, to Position) {
	row := kingMove.Start.Row
	if kingMove.End.Col > kingMove.Start.Col {
		return Position{Row: row, Col: BoardSize}, Position{Row: row, Col: kingMove.End.Col - 1}
	}
	return Position{Row: row, Col: 1}, Position{Row: row, Col: kingMove.End.Col + 1}
}

func isKingInCheck(b *Board, color Color) bool {
	king, ok := b.KingPosition(color)
	if !ok {
		return false
	}
	return isSquareAttacked(b, color.Opponent(), king)
}

// isSquareAttacked reports whether any piece of attacker could move to pos.
func isSquareAttacked(b *Board, attacker Color, pos Position) bool {
	for _, from := range b.positionsOf(attacker) {
		for _, move := range PseudoLegalMoves(b, from) {
			if move.End == pos {
				return true
			}
		}
	}
	return false
}
