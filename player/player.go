package player

import (
	"autopylot/game"
)

// Idle never launches a fleet.
type Idle struct{}

func (Idle) Name() string {
	return "idle"
}

func (Idle) Decide(view *game.Snapshot) []game.Command {
	return nil
}

// Rush trickles single ships from its first planet to the first enemy planet.
type Rush struct{}

func (Rush) Name() string {
	return "rush"
}

func (Rush) Decide(view *game.Snapshot) []game.Command {
	mine, enemy := view.MyPlanets(), view.EnemyPlanets()
	if len(mine) == 0 || len(enemy) == 0 {
		return nil
	}

	home := mine[0]
	if home.Ships > 1 {
		return []game.Command{{Source: home.ID, Destination: enemy[0].ID, Ships: 1}}
	}
	return nil
}
