package player

import (
	"autopylot/game"

	"golang.org/x/exp/rand"
)

// Random launches a random share of a random planet's ships at a random target.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string {
	return "random"
}

func (r *Random) Decide(view *game.Snapshot) []game.Command {
	mine := view.MyPlanets()
	if len(mine) == 0 || len(view.EnemyPlanets()) == 0 {
		return nil
	}

	planets := view.Planets()
	source := mine[r.rng.Intn(len(mine))]
	target := planets[r.rng.Intn(len(planets))]
	if source.ID == target.ID || source.Ships <= 1 {
		return nil
	}

	return []game.Command{{
		Source:      source.ID,
		Destination: target.ID,
		Ships:       1 + r.rng.Intn(source.Ships-1),
	}}
}
