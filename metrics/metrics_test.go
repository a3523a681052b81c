package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autopylot/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start()
	c.AddLaunch(game.Player1)
	c.AddLaunch(game.Player1)
	c.AddLaunch(game.Player2)
	c.AddRejection(game.Player2)
	c.AddRejection(game.Neutral)

	metric := c.Complete(42)
	require.Equal(t, 42, metric.Turns)
	require.Equal(t, [2]int{2, 1}, metric.Launches)
	require.Equal(t, [2]int{0, 1}, metric.Rejections, "Neutral is not counted")
	require.False(t, metric.StartTime.IsZero())

	c.Start()
	require.Equal(t, [2]int{0, 0}, c.Complete(0).Launches, "Start should reset the counters")
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start()
	c.AddLaunch(game.Player1)
	require.Equal(t, MatchMetric{Turns: 3}, c.Complete(3))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("game records", func(t *testing.T) {
		records := []GameRecord{{
			ID:     1,
			Result: game.Result{Map: "duel.txt", Bot1: "rush", Bot2: "idle", Winner: game.Player1, Turn: 17},
			MatchMetric: MatchMetric{
				StartTime:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				Duration:   time.Second,
				Turns:      17,
				Launches:   [2]int{5, 0},
				Rejections: [2]int{1, 0},
			},
		}}
		require.NoError(t, w.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"1", "duel.txt", "rush", "idle", "1", "17", "2024-01-02T03:04:05Z", "1s", "5", "0", "1", "0"}, rows[1])
	})

	t.Run("standings", func(t *testing.T) {
		require.NoError(t, w.WriteStandings([]StandingRecord{
			{Bot: "rush", Wins: 2, Losses: 1, Draws: 0},
			{Bot: "idle", Wins: 0, Losses: 2, Draws: 1},
		}))

		rows := readCSV(t, filepath.Join(w.Dir(), "standings.csv"))
		require.Equal(t, [][]string{
			{"bot", "wins", "losses", "draws"},
			{"rush", "2", "1", "0"},
			{"idle", "0", "2", "1"},
		}, rows)
	})
}
