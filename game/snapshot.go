package game

import "fmt"

// Snapshot is a private copy of the world as seen by one player. Bots only ever
// receive snapshots, so nothing they do can reach the authoritative State.
type Snapshot struct {
	*State
	Turn int // Turns completed before this snapshot was taken

	me Player
}

// Snapshot returns an independent copy of s from the perspective of player.
func (s *State) Snapshot(perspective Player) (*Snapshot, error) {
	if !perspective.IsPlayer() {
		return nil, fmt.Errorf("snapshot for player %d: %w", perspective, ErrInvalidPlayer)
	}
	return &Snapshot{
		State: s.Copy(),
		me:    perspective,
	}, nil
}

func (s *Snapshot) Me() Player {
	return s.me
}

func (s *Snapshot) Enemy() Player {
	return s.me.Opponent()
}

// The player-relative queries below cannot fail: me and enemy are always valid
// and so is Neutral.

func (s *Snapshot) MyPlanets() []Planet {
	planets, _ := s.PlanetsOwnedBy(s.me)
	return planets
}

func (s *Snapshot) EnemyPlanets() []Planet {
	planets, _ := s.PlanetsOwnedBy(s.Enemy())
	return planets
}

func (s *Snapshot) NeutralPlanets() []Planet {
	planets, _ := s.PlanetsOwnedBy(Neutral)
	return planets
}

func (s *Snapshot) MyFleets() []Fleet {
	fleets, _ := s.FleetsOwnedBy(s.me)
	return fleets
}

func (s *Snapshot) EnemyFleets() []Fleet {
	fleets, _ := s.FleetsOwnedBy(s.Enemy())
	return fleets
}

func (s *Snapshot) MyTotalShips() int {
	return s.totalShips(s.me)
}

func (s *Snapshot) EnemyTotalShips() int {
	return s.totalShips(s.Enemy())
}
