package engine

import (
	"bytes"
	"testing"

	"autopylot/game"
	"autopylot/metrics"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// scriptedBot replays a fixed command list per turn and records what it saw.
type scriptedBot struct {
	name   string
	script map[int][]game.Command // Keyed by the turn the snapshot was taken on
	seen   []int
}

func (b *scriptedBot) Name() string {
	return b.name
}

func (b *scriptedBot) Decide(view *game.Snapshot) []game.Command {
	b.seen = append(b.seen, view.Turn)
	return b.script[view.Turn]
}

// vandalBot wrecks its own snapshot and issues nothing.
type vandalBot struct{}

func (vandalBot) Name() string { return "vandal" }

func (vandalBot) Decide(view *game.Snapshot) []game.Command {
	for i := 0; i < 5; i++ {
		view.Advance([]game.Command{{Source: 1, Destination: 3, Ships: 1}}, []game.Command{{Source: 3, Destination: 1, Ships: 1}})
	}
	return nil
}

func idle(name string) *scriptedBot {
	return &scriptedBot{name: name}
}

func duelMap() *game.Map {
	m := game.NewMap("duel")
	m.AddPlanet(0, 0, game.Player1, 10, 2)
	m.AddPlanet(4, 0, game.Neutral, 3, 0)
	m.AddPlanet(8, 0, game.Player2, 10, 2)
	return m
}

func quiet() Option {
	return WithLogger(zerolog.Nop())
}

func TestMatchLifecycle(t *testing.T) {
	t.Run("step before start", func(t *testing.T) {
		m := NewMatch(quiet())
		require.Equal(t, NotStarted, m.Status())
		require.ErrorIs(t, m.Step(), ErrNotStarted)
		require.Nil(t, m.State())

		_, err := m.Run()
		require.ErrorIs(t, err, ErrNotStarted)
	})

	t.Run("start twice", func(t *testing.T) {
		m := NewMatch(quiet())
		require.NoError(t, m.Start(idle("a"), idle("b"), duelMap()))
		require.Equal(t, Running, m.Status())
		require.Zero(t, m.Turn())
		require.ErrorIs(t, m.Start(idle("a"), idle("b"), duelMap()), ErrAlreadyStarted)
	})

	t.Run("step after finish", func(t *testing.T) {
		m := NewMatch(quiet(), WithTurnLimit(3))
		require.NoError(t, m.Start(idle("a"), idle("b"), duelMap()))
		for i := 0; i < 3; i++ {
			require.NoError(t, m.Step())
		}
		require.Equal(t, Finished, m.Status())

		before := m.State().Hash()
		require.ErrorIs(t, m.Step(), ErrMatchFinished)
		require.Equal(t, 3, m.Turn(), "A finished match should not resimulate")
		require.Equal(t, before, m.State().Hash())
	})

	t.Run("missing bots", func(t *testing.T) {
		m := NewMatch(quiet())
		require.Panics(t, func() {
			m.Start(nil, idle("b"), duelMap())
		})
	})
}

func TestResultNotAvailableWhileRunning(t *testing.T) {
	m := NewMatch(quiet())
	require.NoError(t, m.Start(idle("a"), idle("b"), duelMap()))
	require.NoError(t, m.Step())

	_, ok := m.Result()
	require.False(t, ok)
}

func TestBotsSeeTheirOwnPerspective(t *testing.T) {
	var perspectives []game.Player
	recorder := botFunc(func(view *game.Snapshot) []game.Command {
		perspectives = append(perspectives, view.Me())
		return nil
	})

	m := NewMatch(quiet(), WithTurnLimit(1))
	require.NoError(t, m.Start(recorder, recorder, duelMap()))
	require.NoError(t, m.Step())
	require.Equal(t, []game.Player{game.Player1, game.Player2}, perspectives)
}

type botFunc func(view *game.Snapshot) []game.Command

func (f botFunc) Name() string                              { return "func" }
func (f botFunc) Decide(view *game.Snapshot) []game.Command { return f(view) }

func TestBotsCannotMutateTheMatch(t *testing.T) {
	reference := NewMatch(quiet(), WithTurnLimit(5))
	require.NoError(t, reference.Start(idle("a"), idle("b"), duelMap()))

	vandalised := NewMatch(quiet(), WithTurnLimit(5))
	require.NoError(t, vandalised.Start(vandalBot{}, vandalBot{}, duelMap()))

	for i := 0; i < 5; i++ {
		require.NoError(t, reference.Step())
		require.NoError(t, vandalised.Step())
		require.Equal(t, reference.State().Hash(), vandalised.State().Hash(), "turn %d", i+1)
	}
}

func TestSnapshotTurn(t *testing.T) {
	bot := idle("a")
	m := NewMatch(quiet(), WithTurnLimit(3))
	require.NoError(t, m.Start(bot, idle("b"), duelMap()))
	_, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, bot.seen)
}

func TestCaptureNeutralThroughMatch(t *testing.T) {
	attacker := &scriptedBot{
		name:   "attacker",
		script: map[int][]game.Command{0: {{Source: 1, Destination: 2, Ships: 5}}},
	}
	m := NewMatch(quiet(), WithTurnLimit(4))
	require.NoError(t, m.Start(attacker, idle("b"), duelMap()))

	result, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, 4, result.Turn)

	state := m.State()
	target, _ := state.Planet(2)
	home, _ := state.Planet(1)
	require.Equal(t, game.Player1, target.Owner)
	require.Equal(t, 2, target.Ships)
	require.Equal(t, 13, home.Ships)
	require.Equal(t, game.Player2, result.Winner, "Player 2 kept more ships at home")
}

func TestEliminationEndsTheMatch(t *testing.T) {
	m := game.NewMap("lopsided")
	m.AddPlanet(0, 0, game.Player1, 5, 1)
	m.AddPlanet(5, 5, game.Neutral, 5, 1)

	match := NewMatch(quiet())
	require.NoError(t, match.Start(idle("survivor"), idle("ghost"), m))
	require.NoError(t, match.Step())

	require.Equal(t, Finished, match.Status())
	result, ok := match.Result()
	require.True(t, ok)
	require.Equal(t, game.Result{Map: "lopsided", Bot1: "survivor", Bot2: "ghost", Winner: game.Player1, Turn: 1}, result)
	require.Equal(t, "survivor defeated ghost on lopsided on turn 1", result.String())
}

func TestTurnLimitDraw(t *testing.T) {
	m := NewMatch(quiet())
	require.NoError(t, m.Start(idle("left"), idle("right"), duelMap()))

	result, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, 500, result.Turn)
	require.Equal(t, game.Neutral, result.Winner)
	require.True(t, result.IsDraw())
	require.Equal(t, "left and right drew on duel after 500 turns", result.String())
}

func TestTurnLimitWinner(t *testing.T) {
	m := game.NewMap("uneven")
	m.AddPlanet(0, 0, game.Player1, 10, 3)
	m.AddPlanet(8, 0, game.Player2, 10, 2)

	match := NewMatch(quiet(), WithTurnLimit(10))
	require.NoError(t, match.Start(idle("fast"), idle("slow"), m))
	result, err := match.Run()
	require.NoError(t, err)
	require.Equal(t, game.Player1, result.Winner)
	require.Equal(t, "fast", result.WinningBot())
	require.Equal(t, "slow", result.LosingBot())
	require.Equal(t, 10, result.Turn)
}

func TestConcurrentBotsResolveInPlayerOrder(t *testing.T) {
	// Both bots target the neutral planet on the same turn, so the outcome
	// depends on player 1's fleet landing first.
	script := func(source int) map[int][]game.Command {
		return map[int][]game.Command{
			0: {{Source: source, Destination: 2, Ships: 6}},
			2: {{Source: source, Destination: 2, Ships: 3}},
		}
	}
	play := func(options ...Option) game.StateHash {
		m := NewMatch(append(options, quiet(), WithTurnLimit(20))...)
		require.NoError(t, m.Start(
			&scriptedBot{name: "a", script: script(1)},
			&scriptedBot{name: "b", script: script(3)},
			duelMap(),
		))
		_, err := m.Run()
		require.NoError(t, err)
		return m.State().Hash()
	}

	sequential := play()
	for i := 0; i < 10; i++ {
		require.Equal(t, sequential, play(WithConcurrentBots()))
	}
}

func TestDroppedCommandsAreLoggedAndCounted(t *testing.T) {
	var buf bytes.Buffer
	collector := metrics.NewCollector()
	bot := &scriptedBot{
		name: "sloppy",
		script: map[int][]game.Command{
			0: {
				{Source: 1, Destination: 2, Ships: 10},
				{Source: 1, Destination: 2, Ships: 2},
				{Source: 3, Destination: 2, Ships: 2},
			},
		},
	}

	m := NewMatch(WithLogger(zerolog.New(&buf)), WithMetrics(collector), WithTurnLimit(2))
	require.NoError(t, m.Start(bot, idle("b"), duelMap()))
	_, err := m.Run()
	require.NoError(t, err)

	require.Contains(t, buf.String(), "dropped command")
	require.Contains(t, buf.String(), `"bot":"sloppy"`)
	require.Contains(t, buf.String(), game.ErrInsufficientShips.Error())
	require.Contains(t, buf.String(), game.ErrNotOwner.Error())

	metric := m.Metric()
	require.Equal(t, 2, metric.Turns)
	require.Equal(t, [2]int{1, 0}, metric.Launches)
	require.Equal(t, [2]int{2, 0}, metric.Rejections)
	require.Equal(t, Finished, m.Status(), "Dropped commands never end a match early")
}

func TestInvariantsHoldEveryTurn(t *testing.T) {
	aggressive := botFunc(func(view *game.Snapshot) []game.Command {
		var commands []game.Command
		for _, p := range view.MyPlanets() {
			for _, target := range view.Planets() {
				if target.ID != p.ID && p.Ships > 2 {
					commands = append(commands, game.Command{Source: p.ID, Destination: target.ID, Ships: p.Ships / 2})
				}
			}
		}
		return commands
	})

	m := NewMatch(quiet(), WithTurnLimit(60))
	require.NoError(t, m.Start(aggressive, aggressive, duelMap()))
	lastFleetID := 0
	for m.Status() == Running {
		require.NoError(t, m.Step())
		state := m.State()
		for _, p := range state.Planets() {
			require.GreaterOrEqual(t, p.Ships, 0)
		}
		for _, f := range state.Fleets() {
			require.Greater(t, f.Ships, 0)
			require.True(t, f.Owner.IsPlayer())
			require.GreaterOrEqual(t, f.TurnsRemaining, 0)
			require.LessOrEqual(t, f.TurnsRemaining, f.TripLength)
			_, ok := state.Planet(f.Source)
			require.True(t, ok)
			_, ok = state.Planet(f.Destination)
			require.True(t, ok)
		}
		fleets := state.Fleets()
		for i := 1; i < len(fleets); i++ {
			require.Less(t, fleets[i-1].ID, fleets[i].ID)
		}
		if len(fleets) > 0 {
			require.GreaterOrEqual(t, fleets[len(fleets)-1].ID, lastFleetID)
			lastFleetID = fleets[len(fleets)-1].ID
		}
	}
}
