package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Map is the initial layout of a match: every planet with its starting owner and ships.
type Map struct {
	Name    string   // Base name of the file the map was loaded from
	Planets []Planet // Planets in id order, ids start at 1
}

var errEmptyMap = errors.New("map has no planets")

// NewMap creates and returns a new empty Map.
func NewMap(name string) *Map {
	return &Map{
		Name:    name,
		Planets: []Planet{},
	}
}

// AddPlanet appends a planet and assigns it the next id.
func (m *Map) AddPlanet(x, y float64, owner Player, ships, growth int) Planet {
	planet := Planet{
		ID:     len(m.Planets) + 1,
		X:      x,
		Y:      y,
		Owner:  owner,
		Ships:  ships,
		Growth: growth,
	}
	m.Planets = append(m.Planets, planet)
	return planet
}

// LoadMap reads a planet list file.
func LoadMap(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map: %w", err)
	}
	defer f.Close()

	return ParseMap(filepath.Base(path), f)
}

// ParseMap reads one planet per line:
//
//	<affix> <x> <y> <owner> <ships> <growth>
//
// The affix is ignored. Blank lines are skipped and do not consume an id.
func ParseMap(name string, r io.Reader) (*Map, error) {
	m := NewMap(name)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := m.parsePlanet(fields); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", name, err)
	}
	if len(m.Planets) == 0 {
		return nil, fmt.Errorf("%s: %w", name, errEmptyMap)
	}
	return m, nil
}

func (m *Map) parsePlanet(fields []string) error {
	if len(fields) != 6 {
		return fmt.Errorf("expected 6 fields, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}
	owner, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("invalid owner: %w", err)
	}
	if !Player(owner).valid() {
		return fmt.Errorf("owner %d: %w", owner, ErrInvalidPlayer)
	}
	ships, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("invalid ships: %w", err)
	}
	growth, err := strconv.Atoi(fields[5])
	if err != nil {
		return fmt.Errorf("invalid growth: %w", err)
	}
	if ships < 0 || growth < 0 {
		return fmt.Errorf("ships and growth must be non-negative, got %d and %d", ships, growth)
	}

	m.AddPlanet(x, y, Player(owner), ships, growth)
	return nil
}
