package player

import (
	"math"

	"autopylot/game"
)

// Prospector picks the most profitable target for its strongest planet,
// weighing growth against garrison and distance. It accounts for fleets
// already in flight so it neither overcommits nor ignores incoming attacks.
type Prospector struct{}

func (Prospector) Name() string {
	return "prospector"
}

// balance is my margin at a planet once every fleet heading there has landed,
// ignoring growth and arrival order. Negative means the planet ends up, or
// stays, out of my hands.
func balance(view *game.Snapshot, planet game.Planet) int {
	margin := -planet.Ships
	if planet.Owner == view.Me() {
		margin = planet.Ships
	}
	for _, f := range view.Fleets() {
		if f.Destination != planet.ID {
			continue
		}
		if f.Owner == view.Me() {
			margin += f.Ships
		} else {
			margin -= f.Ships
		}
	}
	return margin
}

func (p Prospector) Decide(view *game.Snapshot) []game.Command {
	mine, enemy := view.MyPlanets(), view.EnemyPlanets()
	if len(mine) == 0 {
		return nil
	}

	// Enemy only has fleets left, meet them where they land
	if len(enemy) == 0 {
		return p.intercept(view, mine)
	}

	// Outnumbering the enemy two to one, press on every front at once
	if len(mine) > 2*len(enemy) {
		return p.press(mine, enemy)
	}

	source := mine[0]
	for _, planet := range mine[1:] {
		if planet.Ships > source.Ships {
			source = planet
		}
	}
	if source.Ships <= 1 {
		return nil
	}

	var target game.Planet
	need := 0
	bestScore := math.Inf(-1)
	for _, planet := range view.Planets() {
		if planet.ID == source.ID {
			continue
		}
		margin := balance(view, planet)
		if margin >= 0 {
			continue
		}
		trip, _ := view.TripLength(source.ID, planet.ID)

		var score float64
		var required int
		switch planet.Owner {
		case view.Me():
			// Threatened planet, defending keeps its growth
			score = float64(planet.Growth*10) / float64(trip)
			required = -margin + 1
		case game.Neutral:
			score = float64(planet.Growth) / float64((planet.Ships+1)*trip)
			required = -margin + 1
		default:
			score = float64(planet.Growth) / float64((planet.Ships+1)*trip)
			required = -margin + planet.Growth*trip + 1
		}

		if score > bestScore && required < source.Ships/2 {
			bestScore = score
			target = planet
			need = required
		}
	}

	if need == 0 {
		return nil
	}
	return []game.Command{{Source: source.ID, Destination: target.ID, Ships: need}}
}

func (Prospector) intercept(view *game.Snapshot, mine []game.Planet) []game.Command {
	var commands []game.Command
	for _, f := range view.EnemyFleets() {
		for _, planet := range mine {
			ships := planet.Ships / 2
			if ships > 0 && planet.ID != f.Destination {
				commands = append(commands, game.Command{Source: planet.ID, Destination: f.Destination, Ships: ships})
			}
		}
	}
	return commands
}

func (Prospector) press(mine, enemy []game.Planet) []game.Command {
	var commands []game.Command
	for i, planet := range mine {
		ships := planet.Ships / 2
		if ships > 0 {
			target := enemy[i%len(enemy)]
			commands = append(commands, game.Command{Source: planet.ID, Destination: target.ID, Ships: ships})
		}
	}
	return commands
}
