package player

import (
	"time"

	"autopylot/engine"
	"autopylot/game"

	"github.com/rs/zerolog"
)

type guarded struct {
	bot     engine.Bot
	timeout time.Duration
	logger  zerolog.Logger
}

// Guard shields a match from a misbehaving bot. A panic or a decision that takes
// longer than timeout costs the bot its turn instead of the whole match. A bot
// that overruns keeps working on its own snapshot and its late commands are
// discarded.
func Guard(bot engine.Bot, timeout time.Duration, logger zerolog.Logger) engine.Bot {
	return &guarded{bot: bot, timeout: timeout, logger: logger}
}

func (g *guarded) Name() string {
	return g.bot.Name()
}

func (g *guarded) Decide(view *game.Snapshot) []game.Command {
	decided := make(chan []game.Command, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				g.logger.Error().
					Str("bot", g.bot.Name()).
					Int("turn", view.Turn).
					Interface("panic", r).
					Msg("bot panicked, skipping its turn")
				decided <- nil
			}
		}()
		decided <- g.bot.Decide(view)
	}()

	if g.timeout <= 0 {
		return <-decided
	}

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()
	select {
	case commands := <-decided:
		return commands
	case <-timer.C:
		g.logger.Warn().
			Str("bot", g.bot.Name()).
			Int("turn", view.Turn).
			Dur("timeout", g.timeout).
			Msg("bot ran out of time, skipping its turn")
		return nil
	}
}
