package game

import "math"

// Planet is a fixed point on the map that produces ships for its owner.
type Planet struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Owner  Player  `json:"owner"`
	Ships  int     `json:"ships"`
	Growth int     `json:"growth"`
}

// Distance is the euclidean distance between two planets.
func (p Planet) Distance(other Planet) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// tripLength truncates the distance to whole turns. Planets closer than one
// unit still take a turn to reach.
func tripLength(from, to Planet) int {
	return max(1, int(math.Floor(from.Distance(to))))
}
