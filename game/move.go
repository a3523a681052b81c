package game

// Command is a launch request issued by a bot for a single turn.
type Command struct {
	Source      int `json:"source"`
	Destination int `json:"destination"`
	Ships       int `json:"ships"`
}

// Rejection describes a command the resolver dropped.
type Rejection struct {
	Player  Player
	Command Command
	Err     error
}
