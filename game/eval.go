package game

// Evaluate scores the state between -1 and 1 from player's perspective by
// tallying planets, ships and growth of both sides.
func Evaluate(s *State, player Player) float64 {
	planets := make(map[Player]float64)
	ships := make(map[Player]float64)
	growth := make(map[Player]float64)

	for _, p := range s.planets {
		if p.Owner == Neutral {
			continue
		}
		planets[p.Owner]++
		ships[p.Owner] += float64(p.Ships)
		growth[p.Owner] += float64(p.Growth)
	}
	for _, f := range s.fleets {
		ships[f.Owner] += float64(f.Ships)
	}

	opponent := player.Opponent()
	planetScore := normalize(planets[player], planets[opponent])
	shipScore := normalize(ships[player], ships[opponent])
	growthScore := normalize(growth[player], growth[opponent])

	return (planetScore + shipScore + growthScore) / 3.0
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
