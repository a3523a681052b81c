package engine

import (
	"errors"

	"autopylot/game"
)

// Bot decides the commands of one player for a single turn. The snapshot is
// the bot's own copy and may be modified freely.
type Bot interface {
	Name() string
	Decide(view *game.Snapshot) []game.Command
}

type Status int

const (
	NotStarted Status = iota
	Running
	Finished
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

var (
	ErrNotStarted     = errors.New("match has not started")
	ErrAlreadyStarted = errors.New("match has already started")
	ErrMatchFinished  = errors.New("match is over - no turns allowed")
)
