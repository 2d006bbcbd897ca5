package model

import (
	"sync"

	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection a match writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections for a specific match
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type MatchState struct {
	GameState
	ID            string  `json:"id"`
	Players       Players `json:"players"`
	DrawOfferedBy Color   `json:"drawOfferedBy,omitempty"`
}

// Match pairs a Game with its players and observers. Every call into the
// game goes through mu, since Game itself is not safe for concurrent use.
type Match struct {
	ID          string
	mu          sync.Mutex
	game        *Game
	players     Players
	drawOffer   Color
	connections *GameConnections
}

func NewMatch(id string) *Match {
	return NewMatchFromGame(id, NewGame())
}

func NewMatchFromGame(id string, game *Game) *Match {
	return &Match{
		ID:          id,
		game:        game,
		connections: NewGameConnections(),
	}
}

// AddPlayer seats playerID as white if free, else black.
func (m *Match) AddPlayer(playerID string) (PlayerColor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if color, ok := m.colorOf(playerID); ok {
		return PlayerColor(color), nil
	}
	if m.players.White.ID == "" {
		m.players.White = ClientPlayer{ID: playerID, Color: PlayerColorWhite}
		return PlayerColorWhite, nil
	}
	if m.players.Black.ID == "" {
		m.players.Black = ClientPlayer{ID: playerID, Color: PlayerColorBlack}
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (m *Match) GetState() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stateLocked()
}

func (m *Match) stateLocked() MatchState {
	return MatchState{
		GameState:     m.game.State(),
		ID:            m.ID,
		Players:       m.players,
		DrawOfferedBy: m.drawOffer,
	}
}

func (m *Match) IsPlayerInGame(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.colorOf(playerID)
	return ok
}

func (m *Match) colorOf(playerID string) (Color, bool) {
	if playerID == "" {
		return "", false
	}
	switch playerID {
	case m.players.White.ID:
		return White, true
	case m.players.Black.ID:
		return Black, true
	}
	return "", false
}

func (m *Match) ValidMoves(pos Position) []Move {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.game.ValidMoves(pos)
}

// MakeMove plays move on behalf of playerID and broadcasts the new state.
func (m *Match) MakeMove(playerID string, move Move) (MatchState, error) {
	return m.update(playerID, func(color Color) error {
		if color != m.game.Turn() {
			return ErrNotYourTurn
		}
		if err := m.game.MakeMove(move); err != nil {
			return err
		}
		m.drawOffer = ""
		return nil
	})
}

func (m *Match) Resign(playerID string) (MatchState, error) {
	return m.update(playerID, func(color Color) error {
		return m.game.Resign(color)
	})
}

// OfferDraw records a draw offer from playerID; the opponent settles it
// with AcceptDraw. A move by either side withdraws the offer.
func (m *Match) OfferDraw(playerID string) (MatchState, error) {
	return m.update(playerID, func(color Color) error {
		m.drawOffer = color
		return nil
	})
}

func (m *Match) AcceptDraw(playerID string) (MatchState, error) {
	return m.update(playerID, func(color Color) error {
		if m.drawOffer != color.Opponent() {
			return ErrNoDrawOffer
		}
		m.drawOffer = ""
		return m.game.AgreeDraw()
	})
}

// update runs fn for a seated player of an unfinished game, then pushes
// the resulting state to every connection.
func (m *Match) update(playerID string, fn func(color Color) error) (MatchState, error) {
	m.mu.Lock()
	color, ok := m.colorOf(playerID)
	if !ok {
		m.mu.Unlock()
		return MatchState{}, ErrNotInGame
	}
	if m.game.IsOver() {
		m.mu.Unlock()
		return MatchState{}, ErrGameOver
	}
	if err := fn(color); err != nil {
		m.mu.Unlock()
		return MatchState{}, err
	}
	state := m.stateLocked()
	m.mu.Unlock()

	m.broadcastState(state)
	return state, nil
}

// RegisterConnection attaches conn for playerID and sends it the current
// state. A second connection for the same player is refused with
// ErrDuplicateConnection; the caller owns conn and should close it.
func (m *Match) RegisterConnection(playerID string, conn Conn) error {
	log.Debugf("registering connection %p for player %s in match %s", conn, playerID, m.ID)

	m.connections.mu.Lock()
	if _, exists := m.connections.connections[playerID]; exists {
		m.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	m.connections.connections[playerID] = conn
	m.connections.mu.Unlock()

	m.broadcastState(m.GetState())
	return nil
}

// UnregisterConnection drops playerID's connection if it is still conn.
func (m *Match) UnregisterConnection(playerID string, conn Conn) {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()

	if current, exists := m.connections.connections[playerID]; exists && current == conn {
		log.Debugf("unregistering connection %p for player %s", conn, playerID)
		delete(m.connections.connections, playerID)
	}
}

func (m *Match) ConnectionCount() int {
	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()
	return len(m.connections.connections)
}

// broadcastState writes state to every connection, dropping the ones that
// fail.
func (m *Match) broadcastState(state MatchState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("failed to marshal state for match %s: %v", m.ID, err)
		return
	}

	m.connections.mu.Lock()
	defer m.connections.mu.Unlock()
	for playerID, conn := range m.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state to player %s: %v", playerID, err)
			delete(m.connections.connections, playerID)
		}
	}
}
