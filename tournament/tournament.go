package tournament

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"autopylot/engine"
	"autopylot/game"
	"autopylot/meta"
	"autopylot/metrics"
	"autopylot/player"
	"autopylot/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotEnoughBots = errors.New("a tournament needs at least two bots")
	ErrNoMaps        = errors.New("a tournament needs at least one map")
	ErrDuplicateBot  = errors.New("bot entered twice")
)

type Option func(c *config)

type config struct {
	goroutines int
	turnLimit  int
	seed       uint64
	botTimeout time.Duration
	bothSeats  bool
	logger     zerolog.Logger
}

// WithGoroutines bounds the number of matches played at once.
func WithGoroutines(goroutines int) Option {
	return func(c *config) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

func WithTurnLimit(turns int) Option {
	return func(c *config) {
		if turns > 0 {
			c.turnLimit = turns
		}
	}
}

// WithSeed sets the base seed. Match i hands seed+i to its bots.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithBotTimeout guards every bot decision. Zero disables the guard's timeout
// but keeps its panic recovery.
func WithBotTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.botTimeout = timeout
	}
}

// WithBothSeats plays every pairing twice per map, once from each seat.
func WithBothSeats() Option {
	return func(c *config) {
		c.bothSeats = true
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Report holds every game played, in schedule order, and the final standings.
type Report struct {
	Records   []metrics.GameRecord
	Standings []metrics.StandingRecord
}

// Write stores the report as CSV files in the writer's directory.
func (r Report) Write(w *metrics.Writer) error {
	if err := w.WriteGameRecords(r.Records); err != nil {
		return err
	}
	return w.WriteStandings(r.Standings)
}

type fixture struct {
	bot1, bot2 string
	gameMap    *game.Map
}

// Run plays every pair of bots against each other on every map. Matches run
// concurrently and share nothing; each gets freshly built bots. Cancelling ctx
// stops new matches from being scheduled.
func Run(ctx context.Context, bots []string, maps []*game.Map, options ...Option) (Report, error) {
	c := &config{ // Default values
		goroutines: meta.GO_ROUTINES,
		turnLimit:  meta.TURN_LIMIT,
		botTimeout: meta.BOT_TIMEOUT,
		logger:     log.Logger,
	}
	for _, option := range options {
		option(c)
	}

	if len(bots) < 2 {
		return Report{}, ErrNotEnoughBots
	}
	if len(maps) == 0 {
		return Report{}, ErrNoMaps
	}
	if name, ok := utils.FirstDuplicate(bots); ok {
		return Report{}, fmt.Errorf("%q: %w", name, ErrDuplicateBot)
	}
	for _, name := range bots {
		if _, err := player.New(name, c.seed); err != nil {
			return Report{}, err
		}
	}

	fixtures := schedule(bots, maps, c.bothSeats)
	c.logger.Info().Msgf("starting tournament of %d matches between %d bots on %d maps", len(fixtures), len(bots), len(maps))

	records := make([]metrics.GameRecord, len(fixtures))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.goroutines)
	for i, f := range fixtures {
		i, f := i, f
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := c.play(i+1, f)
			if err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	c.logger.Info().Msgf("completed tournament of %d matches", len(fixtures))
	return Report{
		Records:   records,
		Standings: standings(bots, records),
	}, nil
}

// schedule lists pairs in bot order, each paired bot against every later one,
// and every map per pair.
func schedule(bots []string, maps []*game.Map, bothSeats bool) []fixture {
	var fixtures []fixture
	for i := range bots {
		for j := i + 1; j < len(bots); j++ {
			for _, m := range maps {
				fixtures = append(fixtures, fixture{bot1: bots[i], bot2: bots[j], gameMap: m})
				if bothSeats {
					fixtures = append(fixtures, fixture{bot1: bots[j], bot2: bots[i], gameMap: m})
				}
			}
		}
	}
	return fixtures
}

func (c *config) play(id int, f fixture) (metrics.GameRecord, error) {
	seed := c.seed + uint64(id)
	bot1, err := player.New(f.bot1, seed)
	if err != nil {
		return metrics.GameRecord{}, err
	}
	bot2, err := player.New(f.bot2, seed)
	if err != nil {
		return metrics.GameRecord{}, err
	}

	logger := c.logger.With().Int("match", id).Logger()
	m := engine.NewMatch(
		engine.WithTurnLimit(c.turnLimit),
		engine.WithLogger(logger),
		engine.WithMetrics(metrics.NewCollector()),
	)
	err = m.Start(
		player.Guard(bot1, c.botTimeout, logger),
		player.Guard(bot2, c.botTimeout, logger),
		f.gameMap,
	)
	if err != nil {
		return metrics.GameRecord{}, err
	}

	result, err := m.Run()
	if err != nil {
		return metrics.GameRecord{}, err
	}
	return metrics.GameRecord{
		ID:          id,
		Result:      result,
		MatchMetric: m.Metric(),
	}, nil
}

// standings tallies wins, losses and draws per bot, best record first. A draw
// counts for both bots. Ties keep the order bots were given in.
func standings(bots []string, records []metrics.GameRecord) []metrics.StandingRecord {
	table := make([]metrics.StandingRecord, len(bots))
	for i, name := range bots {
		table[i].Bot = name
	}

	for _, record := range records {
		first := utils.FindIndex(bots, record.Bot1)
		second := utils.FindIndex(bots, record.Bot2)
		switch record.Winner {
		case game.Player1:
			table[first].Wins++
			table[second].Losses++
		case game.Player2:
			table[second].Wins++
			table[first].Losses++
		default:
			table[first].Draws++
			table[second].Draws++
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Wins != table[j].Wins {
			return table[i].Wins > table[j].Wins
		}
		return table[i].Draws > table[j].Draws
	})
	return table
}
