package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.MatchState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// ValidMoves lists the legal moves from the square named by from, e.g. "e2".
func (gs *GameService) ValidMoves(gameID string, from string) ([]model.Move, error) {
	pos, err := model.ParsePosition(from)
	if err != nil {
		return nil, err
	}
	match, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return match.ValidMoves(pos), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, wsMove model.WSMove) (model.MatchState, error) {
	move, err := wsMove.ToMove()
	if err != nil {
		return model.MatchState{}, err
	}
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) Resign(gameID string, playerID string) (model.MatchState, error) {
	match, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MatchState{}, err
	}
	return match.Resign(playerID)
}

func (gs *GameService) OfferDraw(gameID string, playerID string) (model.MatchState, error) {
	match, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MatchState{}, err
	}
	return match.OfferDraw(playerID)
}

func (gs *GameService) AcceptDraw(gameID string, playerID string) (model.MatchState, error) {
	match, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MatchState{}, err
	}
	return match.AcceptDraw(playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
