package game

// Fleet is a group of ships in flight between two planets.
type Fleet struct {
	ID             int    `json:"id"`
	Owner          Player `json:"owner"`
	Ships          int    `json:"ships"`
	Source         int    `json:"source"`
	Destination    int    `json:"destination"`
	TripLength     int    `json:"tripLength"`
	TurnsRemaining int    `json:"turnsRemaining"`
}

// TurnsTravelled is the number of turns the fleet has been in flight.
func (f Fleet) TurnsTravelled() int {
	return f.TripLength - f.TurnsRemaining
}

// Progress is the travelled fraction of the trip, for interpolating a display position.
func (f Fleet) Progress() float64 {
	if f.TripLength == 0 {
		return 1
	}
	return float64(f.TurnsTravelled()) / float64(f.TripLength)
}
