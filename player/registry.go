package player

import (
	"errors"
	"fmt"
	"sort"

	"autopylot/engine"
)

var ErrUnknownBot = errors.New("unknown bot")

var registry = map[string]func(seed uint64) engine.Bot{
	"idle":       func(uint64) engine.Bot { return Idle{} },
	"rush":       func(uint64) engine.Bot { return Rush{} },
	"random":     func(seed uint64) engine.Bot { return NewRandom(seed) },
	"turtle":     func(uint64) engine.Bot { return Turtle{} },
	"prospector": func(uint64) engine.Bot { return Prospector{} },
	"lookahead":  func(uint64) engine.Bot { return NewLookahead(DefaultCutoff) },
}

// New builds a fresh bot by name. The seed only matters to bots that roll dice.
func New(name string, seed uint64) (engine.Bot, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w (have %v)", name, ErrUnknownBot, Names())
	}
	return build(seed), nil
}

// Names lists every registered bot in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
