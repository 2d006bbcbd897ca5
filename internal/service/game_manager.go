package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns every running match. The manager lock only guards the
// registries; moves are serialized per match by the match itself.
type GameManager struct {
	games            map[string]*model.Match
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Match),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
	}
}

// Run pairs queued players every interval until ctx is cancelled.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gm.processMatchmaking()
		}
	}
}

// processMatchmaking starts a match for each pair of queued players and
// notifies both through their matchmaking channels. It returns the
// number of matches created.
func (gm *GameManager) processMatchmaking() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	created := 0
	for gm.queue.Size() >= 2 {
		player1, player2, err := gm.queue.GetNextPair()
		if err != nil {
			break
		}

		gameID := uuid.New().String()
		match := model.NewMatch(gameID)
		p1Color, err := match.AddPlayer(player1.ID)
		if err != nil {
			log.Errorf("adding player %s to match %s: %v", player1.ID, gameID, err)
			continue
		}
		p2Color, err := match.AddPlayer(player2.ID)
		if err != nil {
			log.Errorf("adding player %s to match %s: %v", player2.ID, gameID, err)
			continue
		}
		gm.games[gameID] = match
		created++
		log.Infof("matched %s (%s) against %s (%s) in %s", player1.ID, p1Color, player2.ID, p2Color, gameID)

		gm.notifyMatchFound(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatchFound(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
	return created
}

// notifyMatchFound sends event on playerID's channel and closes it. Must
// be called with gm.mu held.
func (gm *GameManager) notifyMatchFound(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Warnf("no matchmaking channel for player %s", playerID)
		return
	}
	delete(gm.matchingChannels, playerID)
	select {
	case ch <- event:
	default:
		log.Warnf("failed to send match found event to player %s", playerID)
	}
	close(ch)
}

// RegisterMatchmakingChannel sets the channel playerID's match-found event
// is delivered on, closing any previous one.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets ch if it is still playerID's
// channel. The channel is not closed here.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, exists := gm.matchingChannels[playerID]; exists && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewMatch(gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Match, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	match, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return match, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	match, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return match.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.MatchState, error) {
	match, err := gm.GetGame(gameID)
	if err != nil {
		return model.MatchState{}, err
	}
	return match.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) (model.MatchState, error) {
	match, err := gm.GetGame(gameID)
	if err != nil {
		return model.MatchState{}, err
	}
	return match.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	match, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return match.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	match, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	match.UnregisterConnection(playerID, conn)
}
