package controller

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

// startServer serves the routes on a loopback port and returns its address.
func startServer(t *testing.T, gm *service.GameManager) (string, *service.GameService) {
	t.Helper()
	gs := service.NewGameService(gm)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	SetupRoutes(app, gs, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})
	return ln.Addr().String(), gs
}

func dial(t *testing.T, addr, path, playerID string) *fastws.Conn {
	t.Helper()
	conn, _, err := fastws.DefaultDialer.Dial("ws://"+addr+path, http.Header{"X-Player-ID": {playerID}})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// readUntil reads messages until one of type want satisfies match.
func readUntil(t *testing.T, conn *fastws.Conn, want ws.MessageType, match func(ws.Message) bool) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg ws.Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == want && (match == nil || match(msg)) {
			return msg
		}
	}
}

func toMove(color model.Color) func(ws.Message) bool {
	return func(msg ws.Message) bool {
		var state struct {
			ToMove model.Color `json:"toMove"`
		}
		return json.Unmarshal(msg.Payload, &state) == nil && state.ToMove == color
	}
}

func errorText(t *testing.T, msg ws.Message) string {
	t.Helper()
	var text string
	require.NoError(t, json.Unmarshal(msg.Payload, &text))
	return text
}

func send(t *testing.T, conn *fastws.Conn, msgType ws.MessageType, payload interface{}) {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func TestGameSocket(t *testing.T) {
	addr, gs := startServer(t, service.NewGameManager())
	gameID, err := gs.CreateGame()
	require.NoError(t, err)
	_, err = gs.JoinGame(gameID, "alice")
	require.NoError(t, err)
	_, err = gs.JoinGame(gameID, "bob")
	require.NoError(t, err)

	alice := dial(t, addr, "/ws/game/"+gameID, "alice")
	readUntil(t, alice, ws.MessageTypeGameState, toMove(model.White))
	bob := dial(t, addr, "/ws/game/"+gameID, "bob")
	readUntil(t, bob, ws.MessageTypeGameState, toMove(model.White))

	send(t, alice, ws.MessageTypeMove, model.WSMove{From: "e2", To: "e4"})
	readUntil(t, alice, ws.MessageTypeGameState, toMove(model.Black))
	readUntil(t, bob, ws.MessageTypeGameState, toMove(model.Black))

	send(t, bob, ws.MessageTypeMove, model.WSMove{From: "e7", To: "e4"})
	msg := readUntil(t, bob, ws.MessageTypeError, nil)
	assert.Contains(t, errorText(t, msg), model.ErrIllegalMove.Error())

	require.NoError(t, bob.WriteMessage(fastws.TextMessage, []byte("not json")))
	msg = readUntil(t, bob, ws.MessageTypeError, nil)
	assert.Equal(t, "malformed message", errorText(t, msg))

	// The socket stays usable after errors
	send(t, bob, ws.MessageTypeMove, model.WSMove{From: "e7", To: "e5"})
	readUntil(t, alice, ws.MessageTypeGameState, toMove(model.White))

	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	require.NotNil(t, state.LastMove)
	assert.Equal(t, "e7e5", state.LastMove.String())
}

func TestGameSocketRefusesDuplicate(t *testing.T) {
	addr, gs := startServer(t, service.NewGameManager())
	gameID, err := gs.CreateGame()
	require.NoError(t, err)
	_, err = gs.JoinGame(gameID, "alice")
	require.NoError(t, err)

	first := dial(t, addr, "/ws/game/"+gameID, "alice")
	readUntil(t, first, ws.MessageTypeGameState, nil)

	second := dial(t, addr, "/ws/game/"+gameID, "alice")
	msg := readUntil(t, second, ws.MessageTypeError, nil)
	assert.Equal(t, model.ErrDuplicateConnection.Error(), errorText(t, msg))

	var next ws.Message
	assert.Error(t, second.ReadJSON(&next), "refused socket is closed")
}

func TestGameSocketUnknownGame(t *testing.T) {
	addr, _ := startServer(t, service.NewGameManager())
	conn := dial(t, addr, "/ws/game/missing", "alice")
	msg := readUntil(t, conn, ws.MessageTypeError, nil)
	assert.Equal(t, service.ErrGameNotFound.Error(), errorText(t, msg))
}

func TestMatchmakingSocket(t *testing.T) {
	gm := service.NewGameManager()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go gm.Run(ctx, 10*time.Millisecond)
	addr, gs := startServer(t, gm)

	carol := dial(t, addr, "/ws/matchmaking", "carol")
	dave := dial(t, addr, "/ws/matchmaking", "dave")

	var events []model.MatchFoundEvent
	for _, conn := range []*fastws.Conn{carol, dave} {
		msg := readUntil(t, conn, ws.MessageTypeMatchFound, nil)
		var event model.MatchFoundEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		events = append(events, event)
	}

	require.Len(t, events, 2)
	assert.NotEmpty(t, events[0].GameID)
	assert.Equal(t, events[0].GameID, events[1].GameID)
	assert.NotEqual(t, events[0].Color, events[1].Color)

	state, err := gs.GetGameState(events[0].GameID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"carol", "dave"}, []string{state.Players.White.ID, state.Players.Black.ID})
}
