package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"autopylot/engine"
	"autopylot/game"
	"autopylot/meta"
	"autopylot/metrics"
	"autopylot/player"
	"autopylot/tournament"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func main() {
	mapFile := flag.String("map", "maps/duel.txt", "Map file for a single match")
	bot1 := flag.String("bot1", "prospector", "Bot playing as player 1")
	bot2 := flag.String("bot2", "rush", "Bot playing as player 2")
	fps := flag.Float64("fps", meta.FPS, "Turns per second when watching a match, 0 to play at full speed")
	turns := flag.Int("turns", meta.TURN_LIMIT, "Turn limit per match")
	seed := flag.Uint64("seed", 1, "Seed for bots that roll dice")
	timeout := flag.Duration("timeout", meta.BOT_TIMEOUT, "Time a bot gets per decision, 0 to wait forever")
	verbose := flag.Bool("v", false, "Log debug output")

	playAll := flag.Bool("tournament", false, "Play every pair of bots on every map instead of a single match")
	mapDir := flag.String("maps", "maps", "Directory of map files for a tournament")
	bots := flag.String("bots", strings.Join(player.Names(), ","), "Comma separated bots entering a tournament")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of tournament matches played at once")
	bothSeats := flag.Bool("both-seats", false, "Play every tournament pairing from both seats")
	out := flag.String("out", "results", "Directory tournament results are written to")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if *playAll {
		options := []tournament.Option{
			tournament.WithGoroutines(*goroutines),
			tournament.WithTurnLimit(*turns),
			tournament.WithSeed(*seed),
			tournament.WithBotTimeout(*timeout),
		}
		if *bothSeats {
			options = append(options, tournament.WithBothSeats())
		}
		err = runTournament(ctx, strings.Split(*bots, ","), *mapDir, *out, options...)
	} else {
		err = runMatch(ctx, *bot1, *bot2, *mapFile, *fps, *turns, *seed, *timeout)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("autopylot failed")
	}
}

func runMatch(ctx context.Context, name1, name2, mapFile string, fps float64, turns int, seed uint64, timeout time.Duration) error {
	gameMap, err := game.LoadMap(mapFile)
	if err != nil {
		return err
	}
	bot1, err := player.New(name1, seed)
	if err != nil {
		return err
	}
	bot2, err := player.New(name2, seed+1)
	if err != nil {
		return err
	}

	m := engine.NewMatch(engine.WithTurnLimit(turns), engine.WithMetrics(metrics.NewCollector()))
	err = m.Start(player.Guard(bot1, timeout, log.Logger), player.Guard(bot2, timeout, log.Logger), gameMap)
	if err != nil {
		return err
	}

	limit := rate.Inf
	if fps > 0 {
		limit = rate.Limit(fps)
	}
	limiter := rate.NewLimiter(limit, 1)
	for m.Status() == engine.Running {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
		report(m)
	}

	metric := m.Metric()
	log.Info().
		Dur("duration", metric.Duration).
		Ints("launches", metric.Launches[:]).
		Ints("rejections", metric.Rejections[:]).
		Msg("match metrics")
	return nil
}

// report logs a one-line summary of the board after a turn.
func report(m *engine.Match) {
	state := m.State()
	event := log.Info().Int("turn", m.Turn())
	for _, p := range []game.Player{game.Player1, game.Player2} {
		planets, _ := state.PlanetsOwnedBy(p)
		ships, _ := state.TotalShips(p)
		event = event.
			Int(fmt.Sprintf("planets%d", p), len(planets)).
			Int(fmt.Sprintf("ships%d", p), ships)
	}
	event.Int("fleets", len(state.Fleets())).Msg("turn")
}

func runTournament(ctx context.Context, bots []string, mapDir, out string, options ...tournament.Option) error {
	maps, err := loadMaps(mapDir)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := tournament.Run(ctx, bots, maps, options...)
	if err != nil {
		return err
	}
	for _, record := range result.Records {
		log.Debug().Int("match", record.ID).Msg(record.Result.String())
	}
	for _, s := range result.Standings {
		log.Info().Msgf("%s won %d games and lost %d games (drew %d games)", s.Bot, s.Wins, s.Losses, s.Draws)
	}

	writer, err := metrics.NewWriter(out)
	if err != nil {
		return err
	}
	if err := result.Write(writer); err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msgf("stored tournament results in %s", writer.Dir())
	return nil
}

// loadMaps reads every map file in dir, in name order.
func loadMaps(dir string) ([]*game.Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	maps := make([]*game.Map, 0, len(files))
	for _, file := range files {
		m, err := game.LoadMap(file)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}
