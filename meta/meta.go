// meta/meta.go
package meta

import "time"

// TURN_LIMIT is the number of turns after which a match ends on ship count.
const TURN_LIMIT = 500

// GO_ROUTINES defines the number of matches a tournament plays at once.
const GO_ROUTINES = 8

// FPS is the default number of turns per second when watching a match.
const FPS = 12

// BOT_TIMEOUT bounds a single bot decision.
const BOT_TIMEOUT = time.Second
