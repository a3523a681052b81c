package game

// Player identifies the owner of a planet or fleet.
type Player int

const (
	Neutral Player = iota
	Player1
	Player2
)

// Opponent returns the other player. Neutral has no opponent and is returned unchanged.
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return p
	}
}

// IsPlayer reports whether p is one of the two competing players.
func (p Player) IsPlayer() bool {
	return p == Player1 || p == Player2
}

func (p Player) valid() bool {
	return p == Neutral || p.IsPlayer()
}

func (p Player) String() string {
	switch p {
	case Neutral:
		return "Neutral"
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "Invalid"
	}
}

// StateHash is a content digest of a State.
type StateHash [32]byte
