package engine

import (
	"fmt"
	"sync"

	"autopylot/game"
	"autopylot/meta"
	"autopylot/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(m *Match)

// WithTurnLimit ends the match on ship count after the given number of turns.
func WithTurnLimit(turns int) Option {
	return func(m *Match) {
		if turns > 0 {
			m.turnLimit = turns
		}
	}
}

// WithConcurrentBots lets both bots decide at the same time. Commands are
// still resolved player 1 first.
func WithConcurrentBots() Option {
	return func(m *Match) {
		m.concurrent = true
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Match) {
		m.logger = logger
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *Match) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// Match referees one game between two bots on one map.
type Match struct {
	status  Status
	state   *game.State
	turn    int
	bots    [2]Bot
	mapName string
	result  game.Result
	metric  metrics.MatchMetric

	turnLimit  int
	concurrent bool
	logger     zerolog.Logger
	metrics    metrics.Collector
}

func NewMatch(options ...Option) *Match {
	m := &Match{ // Default values
		turnLimit: meta.TURN_LIMIT,
		logger:    log.Logger,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Start sets up a fresh world from the map with bot1 as player 1 and bot2 as player 2.
func (m *Match) Start(bot1, bot2 Bot, gameMap *game.Map) error {
	if bot1 == nil || bot2 == nil {
		panic("need two bots")
	}
	if gameMap == nil {
		panic("need a map")
	}
	if m.status != NotStarted {
		return ErrAlreadyStarted
	}

	m.bots = [2]Bot{bot1, bot2}
	m.mapName = gameMap.Name
	m.state = game.NewState(gameMap)
	m.turn = 0
	m.status = Running
	m.metrics.Start()

	m.logger.Info().Msgf("%s (player 1) vs %s (player 2) on %s", bot1.Name(), bot2.Name(), gameMap.Name)
	return nil
}

// Step plays a single turn: both bots decide on their own snapshot, then the turn is resolved.
func (m *Match) Step() error {
	switch m.status {
	case NotStarted:
		return ErrNotStarted
	case Finished:
		return ErrMatchFinished
	}

	commands := m.decide()
	m.turn++

	rejections := m.state.Advance(commands[0], commands[1])
	m.record(commands, rejections)

	if m.state.Loser() != game.Neutral || m.turn >= m.turnLimit {
		m.finish()
	}
	return nil
}

// Run plays turns until the match is over.
func (m *Match) Run() (game.Result, error) {
	for m.status == Running {
		if err := m.Step(); err != nil {
			return game.Result{}, err
		}
	}
	if m.status != Finished {
		return game.Result{}, ErrNotStarted
	}
	return m.result, nil
}

func (m *Match) decide() [2][]game.Command {
	var views [2]*game.Snapshot
	for i, player := range []game.Player{game.Player1, game.Player2} {
		view, err := m.state.Snapshot(player)
		if err != nil {
			panic(fmt.Sprintf("snapshot for %s: %v", player, err))
		}
		view.Turn = m.turn
		views[i] = view
	}

	var commands [2][]game.Command
	if !m.concurrent {
		for i, bot := range m.bots {
			commands[i] = bot.Decide(views[i])
		}
		return commands
	}

	var wg sync.WaitGroup
	for i, bot := range m.bots {
		i, bot := i, bot
		wg.Add(1)
		go func() {
			defer wg.Done()
			commands[i] = bot.Decide(views[i])
		}()
	}
	wg.Wait()
	return commands
}

func (m *Match) record(commands [2][]game.Command, rejections []game.Rejection) {
	rejected := [2]int{}
	for _, r := range rejections {
		rejected[r.Player-1]++
		m.metrics.AddRejection(r.Player)
		m.logger.Warn().
			Int("turn", m.turn).
			Str("bot", m.bots[r.Player-1].Name()).
			Stringer("player", r.Player).
			Int("source", r.Command.Source).
			Int("destination", r.Command.Destination).
			Int("ships", r.Command.Ships).
			Str("reason", r.Err.Error()).
			Msg("dropped command")
	}
	for i, player := range []game.Player{game.Player1, game.Player2} {
		for j := 0; j < len(commands[i])-rejected[i]; j++ {
			m.metrics.AddLaunch(player)
		}
	}
}

func (m *Match) finish() {
	m.status = Finished
	m.result = game.Result{
		Map:    m.mapName,
		Bot1:   m.bots[0].Name(),
		Bot2:   m.bots[1].Name(),
		Winner: m.state.Winner(),
		Turn:   m.turn,
	}
	m.metric = m.metrics.Complete(m.turn)

	m.logger.Info().Msg(m.result.String())
}

func (m *Match) Status() Status {
	return m.status
}

// Turn is the number of turns played so far.
func (m *Match) Turn() int {
	return m.turn
}

// State returns a copy of the current world, or nil before the match starts.
func (m *Match) State() *game.State {
	if m.state == nil {
		return nil
	}
	return m.state.Copy()
}

// Result returns the outcome once the match is finished.
func (m *Match) Result() (game.Result, bool) {
	return m.result, m.status == Finished
}

// Metric returns the collected match metric once the match is finished.
func (m *Match) Metric() metrics.MatchMetric {
	return m.metric
}
