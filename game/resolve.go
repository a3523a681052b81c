package game

import "fmt"

// Advance resolves one turn. The first player's commands are validated and
// launched before the second player's, each in list order. Then every fleet
// moves one step, arriving fleets fight at their destination in launch order,
// and finally every owned planet grows.
//
// Invalid commands are dropped without touching the state and returned as rejections.
func (s *State) Advance(first, second []Command) []Rejection {
	var rejections []Rejection
	for _, batch := range []struct {
		player   Player
		commands []Command
	}{
		{Player1, first},
		{Player2, second},
	} {
		for _, cmd := range batch.commands {
			if err := s.launch(batch.player, cmd); err != nil {
				rejections = append(rejections, Rejection{
					Player:  batch.player,
					Command: cmd,
					Err:     err,
				})
			}
		}
	}

	s.moveFleets()
	s.produce()

	return rejections
}

// validate checks a command in a fixed order and reports the first failure.
func (s *State) validate(player Player, cmd Command) error {
	if cmd.Ships <= 0 {
		return fmt.Errorf("cannot launch %d ships: %w", cmd.Ships, ErrNonPositiveShips)
	}
	source := s.planet(cmd.Source)
	if source == nil {
		return fmt.Errorf("cannot launch from planet %d: %w", cmd.Source, ErrUnknownSource)
	}
	if source.Ships <= cmd.Ships {
		return fmt.Errorf("cannot launch %d ships from planet %d holding %d: %w",
			cmd.Ships, source.ID, source.Ships, ErrInsufficientShips)
	}
	if s.planet(cmd.Destination) == nil {
		return fmt.Errorf("cannot launch to planet %d: %w", cmd.Destination, ErrUnknownDestination)
	}
	if source.Owner != player {
		return fmt.Errorf("cannot launch from planet %d owned by %s: %w", source.ID, source.Owner, ErrNotOwner)
	}
	if cmd.Source == cmd.Destination {
		return fmt.Errorf("cannot launch from planet %d to itself: %w", source.ID, ErrSameSourceAndDestination)
	}
	return nil
}

func (s *State) launch(player Player, cmd Command) error {
	if err := s.validate(player, cmd); err != nil {
		return err
	}

	source, destination := s.planet(cmd.Source), s.planet(cmd.Destination)
	source.Ships -= cmd.Ships
	trip := tripLength(*source, *destination)
	s.fleets = append(s.fleets, Fleet{
		ID:             s.nextFleetID,
		Owner:          player,
		Ships:          cmd.Ships,
		Source:         source.ID,
		Destination:    destination.ID,
		TripLength:     trip,
		TurnsRemaining: trip,
	})
	s.nextFleetID++
	return nil
}

// moveFleets advances every fleet, including ones launched this turn, and lands arrivals.
func (s *State) moveFleets() {
	inFlight := s.fleets[:0]
	for _, f := range s.fleets {
		f.TurnsRemaining--
		if f.TurnsRemaining > 0 {
			inFlight = append(inFlight, f)
			continue
		}
		s.land(f)
	}
	s.fleets = inFlight
}

// land resolves a fleet arriving at its destination.
func (s *State) land(f Fleet) {
	planet := s.planet(f.Destination)
	if planet.Owner == f.Owner {
		planet.Ships += f.Ships
		return
	}

	planet.Ships -= f.Ships
	if planet.Ships < 0 {
		// Capture the planet with the surviving attackers
		planet.Ships = -planet.Ships
		planet.Owner = f.Owner
	}
}

func (s *State) produce() {
	for i := range s.planets {
		if s.planets[i].Owner != Neutral {
			s.planets[i].Ships += s.planets[i].Growth
		}
	}
}
