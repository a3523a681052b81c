package player

import (
	"sort"

	"autopylot/game"
)

// DefaultCutoff is how many turns Lookahead rolls the world forward before scoring it.
const DefaultCutoff = 20

// sources is the number of strongest planets Lookahead considers launching from.
const sources = 3

// Lookahead tries every launch of half the garrison from its strongest planets,
// rolls the world forward with nobody else acting and keeps the launch whose
// outcome scores best. It stays put when no launch beats doing nothing.
type Lookahead struct {
	cutoff int
}

func NewLookahead(cutoff int) *Lookahead {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &Lookahead{cutoff: cutoff}
}

func (l *Lookahead) Name() string {
	return "lookahead"
}

func (l *Lookahead) Decide(view *game.Snapshot) []game.Command {
	mine := view.MyPlanets()
	if len(mine) == 0 || len(view.EnemyPlanets()) == 0 {
		return nil
	}

	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Ships > mine[j].Ships
	})
	if len(mine) > sources {
		mine = mine[:sources]
	}

	var best []game.Command
	bestScore := l.rollout(view, nil)
	for _, source := range mine {
		ships := source.Ships / 2
		if ships == 0 {
			continue
		}
		for _, target := range view.Planets() {
			if target.ID == source.ID {
				continue
			}
			candidate := []game.Command{{Source: source.ID, Destination: target.ID, Ships: ships}}
			if score := l.rollout(view, candidate); score > bestScore {
				bestScore = score
				best = candidate
			}
		}
	}
	return best
}

// rollout plays the commands on a copy of the snapshot, advances cutoff turns
// in total and evaluates the result for the deciding player.
func (l *Lookahead) rollout(view *game.Snapshot, commands []game.Command) float64 {
	state := view.State.Copy()
	if view.Me() == game.Player1 {
		state.Advance(commands, nil)
	} else {
		state.Advance(nil, commands)
	}
	for i := 1; i < l.cutoff && state.Loser() == game.Neutral; i++ {
		state.Advance(nil, nil)
	}
	return game.Evaluate(state, view.Me())
}
