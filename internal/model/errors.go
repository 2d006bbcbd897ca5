package model

import "errors"

var (
	ErrIllegalMove         = errors.New("illegal move")
	ErrGameOver            = errors.New("game is over")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrNotInGame           = errors.New("player not in game")
	ErrGameFull            = errors.New("game is full")
	ErrNoDrawOffer         = errors.New("no draw offer to accept")
	ErrDuplicateConnection = errors.New("connection already exists")
)
