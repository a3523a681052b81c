package game

import "fmt"

// Result is the outcome of a finished match.
type Result struct {
	Map    string `json:"map"`
	Bot1   string `json:"bot1"`
	Bot2   string `json:"bot2"`
	Winner Player `json:"winner"` // Neutral for a draw
	Turn   int    `json:"turn"`
}

// IsDraw reports whether neither player won.
func (r Result) IsDraw() bool {
	return r.Winner == Neutral
}

// WinningBot returns the winning bot's name, or "" for a draw.
func (r Result) WinningBot() string {
	switch r.Winner {
	case Player1:
		return r.Bot1
	case Player2:
		return r.Bot2
	default:
		return ""
	}
}

// LosingBot returns the losing bot's name, or "" for a draw.
func (r Result) LosingBot() string {
	switch r.Winner {
	case Player1:
		return r.Bot2
	case Player2:
		return r.Bot1
	default:
		return ""
	}
}

func (r Result) String() string {
	if r.IsDraw() {
		return fmt.Sprintf("%s and %s drew on %s after %d turns", r.Bot1, r.Bot2, r.Map, r.Turn)
	}
	return fmt.Sprintf("%s defeated %s on %s on turn %d", r.WinningBot(), r.LosingBot(), r.Map, r.Turn)
}
