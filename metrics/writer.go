package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"autopylot/game"
)

type GameRecord struct {
	ID int
	game.Result
	MatchMetric
}

type StandingRecord struct {
	Bot    string
	Wins   int
	Losses int
	Draws  int
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder of root to write records into.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir is the directory records are written to.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "map", "bot1", "bot2", "winner", "turns", "start_time", "duration",
		"launches1", "launches2", "rejections1", "rejections2"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Map,
			record.Bot1,
			record.Bot2,
			strconv.Itoa(int(record.Winner)),
			strconv.Itoa(record.Turn),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Launches[0]),
			strconv.Itoa(record.Launches[1]),
			strconv.Itoa(record.Rejections[0]),
			strconv.Itoa(record.Rejections[1]),
		})
	}

	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteStandings(standings []StandingRecord) error {
	header := []string{"bot", "wins", "losses", "draws"}

	rows := make([][]string, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, []string{
			s.Bot,
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.Draws),
		})
	}

	return w.write("standings.csv", header, rows)
}

func (w *Writer) write(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", filename, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", filename, err)
	}

	return nil
}
