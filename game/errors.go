package game

import "errors"

var ErrInvalidPlayer = errors.New("invalid player")

// Reasons a command is rejected by the resolver.
var (
	ErrNonPositiveShips         = errors.New("ship count must be positive")
	ErrUnknownSource            = errors.New("unknown source planet")
	ErrInsufficientShips        = errors.New("source planet must keep at least one ship")
	ErrUnknownDestination       = errors.New("unknown destination planet")
	ErrNotOwner                 = errors.New("source planet is not owned by the player")
	ErrSameSourceAndDestination = errors.New("source and destination are the same planet")
)
