package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var sortMoves = cmpopts.SortSlices(func(a, b Move) bool { return a.String() < b.String() })

func sq(t *testing.T, s string) Position {
	t.Helper()
	pos, err := ParsePosition(s)
	require.NoError(t, err)
	return pos
}

func mv(t *testing.T, from, to string) Move {
	t.Helper()
	return NewMove(sq(t, from), sq(t, to))
}

func boardOf(t *testing.T, pieces map[string]Piece) Board {
	t.Helper()
	b := NewBoard()
	for s, p := range pieces {
		b.AddPiece(sq(t, s), p)
	}
	return b
}

func play(t *testing.T, g *Game, moves ...[2]string) {
	t.Helper()
	for _, m := range moves {
		require.NoError(t, g.MakeMove(mv(t, m[0], m[1])), "move %s%s", m[0], m[1])
	}
}

func assertMoves(t *testing.T, want, got []Move) {
	t.Helper()
	if diff := cmp.Diff(want, got, sortMoves, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

func allValidMoves(g *Game, color Color) []Move {
	b := g.Board()
	moves := []Move{}
	for _, pos := range b.positionsOf(color) {
		moves = append(moves, g.ValidMoves(pos)...)
	}
	return moves
}
