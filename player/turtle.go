package player

import (
	"autopylot/game"
)

// Turtle expands slowly: one attack per turn, only when it can take the target
// outright, preferring neutral planets over enemy ones.
type Turtle struct{}

func (Turtle) Name() string {
	return "turtle"
}

func (Turtle) Decide(view *game.Snapshot) []game.Command {
	mine := view.MyPlanets()
	if len(mine) == 0 || len(view.EnemyPlanets()) == 0 {
		return nil
	}

	for _, targets := range [][]game.Planet{view.NeutralPlanets(), view.EnemyPlanets()} {
		for _, target := range targets {
			for _, p := range mine {
				if p.Ships >= target.Ships+2 {
					return []game.Command{{Source: p.ID, Destination: target.ID, Ships: target.Ships + 1}}
				}
			}
		}
	}
	return nil
}
