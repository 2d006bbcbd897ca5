package service

import (
	"context"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndJoinGame(t *testing.T) {
	gs := NewGameService(NewGameManager())

	gameID, err := gs.CreateGame()
	require.NoError(t, err)
	require.NotEmpty(t, gameID)

	color, err := gs.JoinGame(gameID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.PlayerColorWhite, color)
	color, err = gs.JoinGame(gameID, "bob")
	require.NoError(t, err)
	assert.Equal(t, model.PlayerColorBlack, color)
	_, err = gs.JoinGame(gameID, "carol")
	require.ErrorIs(t, err, model.ErrGameFull)

	_, err = gs.JoinGame("missing", "alice")
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestCreateGameTwice(t *testing.T) {
	gm := NewGameManager()
	require.NoError(t, gm.CreateGame("fixed"))
	require.ErrorIs(t, gm.CreateGame("fixed"), ErrGameExists)
}

func TestHandleMove(t *testing.T) {
	gs := NewGameService(NewGameManager())
	gameID, err := gs.CreateGame()
	require.NoError(t, err)
	_, err = gs.JoinGame(gameID, "alice")
	require.NoError(t, err)
	_, err = gs.JoinGame(gameID, "bob")
	require.NoError(t, err)

	moves, err := gs.ValidMoves(gameID, "g1")
	require.NoError(t, err)
	assert.Len(t, moves, 2)

	_, err = gs.ValidMoves(gameID, "z9")
	require.ErrorIs(t, err, model.ErrInvalidSquare)

	state, err := gs.HandleMove(gameID, "alice", model.WSMove{From: "g1", To: "f3"})
	require.NoError(t, err)
	assert.Equal(t, model.Black, state.ToMove)

	_, err = gs.HandleMove(gameID, "bob", model.WSMove{From: "e7", To: "e4"})
	require.ErrorIs(t, err, model.ErrIllegalMove)

	_, err = gs.HandleMove("missing", "bob", model.WSMove{From: "e7", To: "e5"})
	require.ErrorIs(t, err, ErrGameNotFound)

	state, err = gs.Resign(gameID, "bob")
	require.NoError(t, err)
	assert.Equal(t, model.WhiteWins, state.Outcome)

	got, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	assert.Equal(t, model.Resignation, got.Method)
}

func TestDrawByAgreement(t *testing.T) {
	gs := NewGameService(NewGameManager())
	gameID, err := gs.CreateGame()
	require.NoError(t, err)
	_, _ = gs.JoinGame(gameID, "alice")
	_, _ = gs.JoinGame(gameID, "bob")

	_, err = gs.OfferDraw(gameID, "bob")
	require.NoError(t, err)
	state, err := gs.AcceptDraw(gameID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.Draw, state.Outcome)
}

func TestProcessMatchmaking(t *testing.T) {
	gm := NewGameManager()
	alice := make(chan model.MatchFoundEvent, 1)
	bob := make(chan model.MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("alice", alice)
	gm.RegisterMatchmakingChannel("bob", bob)

	require.NoError(t, gm.JoinMatchmaking("alice"))
	assert.Equal(t, 0, gm.processMatchmaking(), "one player cannot be matched")
	require.NoError(t, gm.JoinMatchmaking("bob"))
	require.ErrorIs(t, gm.JoinMatchmaking("bob"), model.ErrAlreadyQueued)

	assert.Equal(t, 1, gm.processMatchmaking())

	aliceEvent, ok := <-alice
	require.True(t, ok)
	bobEvent, ok := <-bob
	require.True(t, ok)
	assert.Equal(t, aliceEvent.GameID, bobEvent.GameID)
	assert.Equal(t, model.PlayerColorWhite, aliceEvent.Color)
	assert.Equal(t, model.PlayerColorBlack, bobEvent.Color)

	_, ok = <-alice
	assert.False(t, ok, "channel is closed after the event")

	match, err := gm.GetGame(aliceEvent.GameID)
	require.NoError(t, err)
	assert.True(t, match.IsPlayerInGame("alice"))
	assert.True(t, match.IsPlayerInGame("bob"))
}

func TestRegisterMatchmakingChannelReplacesOld(t *testing.T) {
	gm := NewGameManager()
	first := make(chan model.MatchFoundEvent, 1)
	second := make(chan model.MatchFoundEvent, 1)

	gm.RegisterMatchmakingChannel("alice", first)
	gm.RegisterMatchmakingChannel("alice", second)
	_, ok := <-first
	assert.False(t, ok)

	// Unregistering the stale channel keeps the current one
	gm.UnregisterMatchmakingChannel("alice", first)
	gm.mu.RLock()
	assert.Equal(t, second, gm.matchingChannels["alice"])
	gm.mu.RUnlock()

	gm.UnregisterMatchmakingChannel("alice", second)
	gm.mu.RLock()
	assert.NotContains(t, gm.matchingChannels, "alice")
	gm.mu.RUnlock()
}

func TestRunStopsOnCancel(t *testing.T) {
	gm := NewGameManager()
	ch := make(chan model.MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("alice", ch)
	require.NoError(t, gm.JoinMatchmaking("alice"))
	require.NoError(t, gm.JoinMatchmaking("bob"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gm.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case event := <-ch:
		assert.NotEmpty(t, event.GameID)
	case <-time.After(2 * time.Second):
		t.Fatal("no match found event")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
