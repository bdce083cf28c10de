package battle

import (
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/standbattle/internal/stand"
)

// Config holds battle options.
type Config struct {
	// RosterPath points at a roster YAML file. Empty uses the embedded roster.
	RosterPath string
	// BombTarget receives the direct bomb in phase 1.
	BombTarget stand.TargetID
	// LockTarget is exempted from the reality reset in phase 3.
	LockTarget stand.TargetID
	// Ticks is how many heat-seeking updates run in phase 2.
	Ticks int
	// Pause is slept between steps so a viewer can follow. Zero runs flat out.
	Pause time.Duration
	// Fuse arms the direct bomb with a timer; phase 1 then waits for it to
	// run out instead of detonating at once. Zero detonates immediately.
	Fuse time.Duration
	// Logger receives command failures and run summaries. Nil discards them.
	Logger *zap.Logger
}

// DefaultConfig returns the settings of the demo battle.
func DefaultConfig() Config {
	return Config{
		BombTarget: 1,
		LockTarget: 3,
		Ticks:      3,
	}
}
