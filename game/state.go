package game

import (
	"encoding/binary"
	"fmt"
	"math"

	"lukechampine.com/blake3"
)

// State is the authoritative world of one match: every planet and every fleet in flight.
// Accessors return copies, only Advance mutates a State.
type State struct {
	planets     []Planet    // Ordered by id
	planetIndex map[int]int // Planet id to position in planets, never mutated after NewState
	fleets      []Fleet     // Ordered by id, which is also launch order
	nextFleetID int
}

// NewState builds the initial world for a map. The map's planets are copied.
func NewState(m *Map) *State {
	s := &State{
		planets:     make([]Planet, len(m.Planets)),
		planetIndex: make(map[int]int, len(m.Planets)),
		fleets:      []Fleet{},
		nextFleetID: 1,
	}
	copy(s.planets, m.Planets)
	for i, p := range s.planets {
		s.planetIndex[p.ID] = i
	}
	return s
}

// Copy returns a deep copy that shares no mutable data with s.
func (s *State) Copy() *State {
	planetsCopy := make([]Planet, len(s.planets))
	copy(planetsCopy, s.planets)

	fleetsCopy := make([]Fleet, len(s.fleets))
	copy(fleetsCopy, s.fleets)

	return &State{
		planets:     planetsCopy,
		planetIndex: s.planetIndex,
		fleets:      fleetsCopy,
		nextFleetID: s.nextFleetID,
	}
}

func (s *State) planet(id int) *Planet {
	i, ok := s.planetIndex[id]
	if !ok {
		return nil
	}
	return &s.planets[i]
}

// Planet returns the planet with the given id.
func (s *State) Planet(id int) (Planet, bool) {
	p := s.planet(id)
	if p == nil {
		return Planet{}, false
	}
	return *p, true
}

// Fleet returns the in-flight fleet with the given id.
func (s *State) Fleet(id int) (Fleet, bool) {
	for _, f := range s.fleets {
		if f.ID == id {
			return f, true
		}
	}
	return Fleet{}, false
}

// Planets returns every planet in id order.
func (s *State) Planets() []Planet {
	planets := make([]Planet, len(s.planets))
	copy(planets, s.planets)
	return planets
}

// Fleets returns every fleet in flight in id order.
func (s *State) Fleets() []Fleet {
	fleets := make([]Fleet, len(s.fleets))
	copy(fleets, s.fleets)
	return fleets
}

// PlanetsOwnedBy returns the planets owned by player in id order. Neutral is allowed.
func (s *State) PlanetsOwnedBy(player Player) ([]Planet, error) {
	if !player.valid() {
		return nil, fmt.Errorf("planets of player %d: %w", player, ErrInvalidPlayer)
	}
	planets := []Planet{}
	for _, p := range s.planets {
		if p.Owner == player {
			planets = append(planets, p)
		}
	}
	return planets, nil
}

// FleetsOwnedBy returns the fleets owned by player in id order. Fleets are never neutral.
func (s *State) FleetsOwnedBy(player Player) ([]Fleet, error) {
	if !player.IsPlayer() {
		return nil, fmt.Errorf("fleets of player %d: %w", player, ErrInvalidPlayer)
	}
	fleets := []Fleet{}
	for _, f := range s.fleets {
		if f.Owner == player {
			fleets = append(fleets, f)
		}
	}
	return fleets, nil
}

// TotalShips counts the ships player holds on planets and in flight.
func (s *State) TotalShips(player Player) (int, error) {
	if !player.IsPlayer() {
		return 0, fmt.Errorf("total ships of player %d: %w", player, ErrInvalidPlayer)
	}
	return s.totalShips(player), nil
}

func (s *State) totalShips(player Player) int {
	total := 0
	for _, p := range s.planets {
		if p.Owner == player {
			total += p.Ships
		}
	}
	for _, f := range s.fleets {
		if f.Owner == player {
			total += f.Ships
		}
	}
	return total
}

// TripLength is the number of turns a fleet needs between two planets.
func (s *State) TripLength(source, destination int) (int, bool) {
	from, to := s.planet(source), s.planet(destination)
	if from == nil || to == nil {
		return 0, false
	}
	return tripLength(*from, *to), true
}

// Extents returns the bounding box of all planet positions.
func (s *State) Extents() (minX, maxX, minY, maxY float64) {
	if len(s.planets) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range s.planets {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY
}

// Winner returns the player with strictly more ships, or Neutral on a tie.
func (s *State) Winner() Player {
	ships1, ships2 := s.totalShips(Player1), s.totalShips(Player2)
	switch {
	case ships1 > ships2:
		return Player1
	case ships2 > ships1:
		return Player2
	default:
		return Neutral
	}
}

// Loser returns the first player left without any ships, or Neutral if both still have some.
func (s *State) Loser() Player {
	if s.totalShips(Player1) == 0 {
		return Player1
	}
	if s.totalShips(Player2) == 0 {
		return Player2
	}
	return Neutral
}

// Hash digests every planet, every fleet and the fleet id counter.
// Two states with the same hash resolve identically.
func (s *State) Hash() StateHash {
	hasher := blake3.New(len(StateHash{}), nil)

	// Hash planets
	binary.Write(hasher, binary.LittleEndian, int64(len(s.planets)))
	for _, p := range s.planets {
		binary.Write(hasher, binary.LittleEndian, []int64{
			int64(p.ID),
			int64(math.Float64bits(p.X)),
			int64(math.Float64bits(p.Y)),
			int64(p.Owner),
			int64(p.Ships),
			int64(p.Growth),
		})
	}

	// Hash fleets
	binary.Write(hasher, binary.LittleEndian, int64(len(s.fleets)))
	for _, f := range s.fleets {
		binary.Write(hasher, binary.LittleEndian, []int64{
			int64(f.ID),
			int64(f.Owner),
			int64(f.Ships),
			int64(f.Source),
			int64(f.Destination),
			int64(f.TripLength),
			int64(f.TurnsRemaining),
		})
	}

	binary.Write(hasher, binary.LittleEndian, int64(s.nextFleetID))

	var hash StateHash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
