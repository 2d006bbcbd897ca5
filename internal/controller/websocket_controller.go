package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves one player's or spectator's socket for a game
// until it closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := utils.CopyString(c.Params("gameId"))
	playerID := c.Locals("playerID").(string)
	conn := ws.NewConn(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("failed to register connection for player %s in game %s: %v", playerID, gameID, err)
		sendSocketError(conn, err.Error())
		conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error from player %s: %v", playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error from player %s: %v", playerID, err)
			sendSocketError(conn, "malformed message")
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("handle error from player %s: %v", playerID, err)
			sendSocketError(conn, err.Error())
		}
	}
}

// handleMessage applies a client message. The resulting state reaches the
// client through the match broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	var err error
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err = wsc.gameService.HandleMove(gameID, playerID, move)
	case ws.MessageTypeResign:
		_, err = wsc.gameService.Resign(gameID, playerID)
	case ws.MessageTypeDrawOffer:
		_, err = wsc.gameService.OfferDraw(gameID, playerID)
	case ws.MessageTypeDraw:
		_, err = wsc.gameService.AcceptDraw(gameID, playerID)
	default:
		err = fmt.Errorf("unknown message type: %s", msg.Type)
	}
	return err
}

// HandleMatchmaking queues the player and waits for a match-found event or
// for the socket to close.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	events := make(chan model.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, events)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, events)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		log.Debugf("player %s already queued: %v", playerID, err)
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-events:
		if !ok {
			// Replaced by a newer matchmaking socket for the same player
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			log.Errorf("failed to marshal match found event: %v", err)
			return
		}
		if err := c.WriteJSON(msg); err != nil {
			log.Warnf("failed to send match found event to player %s: %v", playerID, err)
		}
	case <-closed:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

func sendSocketError(conn *ws.Conn, text string) {
	if err := conn.SendError(text); err != nil {
		log.Debugf("failed to send error message: %v", err)
	}
}
