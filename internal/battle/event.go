package battle

import (
	"time"

	"github.com/samdwyer/standbattle/internal/sfx"
	"github.com/samdwyer/standbattle/internal/stand"
)

// Command names an engine operation issued by the battle.
type Command string

const (
	CmdAddTarget           Command = "add_target"
	CmdPlaceDirect         Command = "place_direct"
	CmdArmTimer            Command = "arm_timer"
	CmdDetonate            Command = "detonate"
	CmdDefuse              Command = "defuse"
	CmdActivateHeatSeeking Command = "activate_heat_seeking"
	CmdTickHeatSeeking     Command = "tick_heat_seeking"
	CmdActivateResetLock   Command = "activate_reset_lock"
	CmdTriggerReset        Command = "trigger_reset"
	CmdStatus              Command = "status"
)

// Event records one command and what came back from the engine.
// Only the fields relevant to the command are set.
type Event struct {
	Phase    Phase
	Command  Command
	TargetID stand.TargetID
	Tick     int           // 1-based heat-seeking update number
	Fuse     time.Duration // Delay set by arm_timer
	Err      error

	Target    *stand.Target
	Explosion *stand.Explosion
	Retarget  *stand.Retarget
	Reset     *stand.ResetResult
	Status    *stand.Status
}

// OK reports whether the command succeeded.
func (ev Event) OK() bool { return ev.Err == nil }

// Kind returns the effect kind a command places or consumes.
func (ev Event) Kind() (stand.EffectKind, bool) {
	switch ev.Command {
	case CmdPlaceDirect, CmdArmTimer:
		return stand.EffectDirect, true
	case CmdActivateHeatSeeking, CmdTickHeatSeeking:
		return stand.EffectHeatSeeking, true
	case CmdActivateResetLock:
		return stand.EffectRealityReset, true
	case CmdDetonate:
		if ev.Explosion != nil {
			return ev.Explosion.Kind, true
		}
	}
	return 0, false
}

// Cue returns the sound that accompanies a successful command.
func (ev Event) Cue() (sfx.Cue, bool) {
	if ev.Err != nil {
		return 0, false
	}
	switch ev.Command {
	case CmdPlaceDirect:
		return sfx.CueBombPlace, true
	case CmdDetonate:
		return sfx.CueExplosion, true
	case CmdActivateHeatSeeking:
		return sfx.CueHeatSeeking, true
	case CmdTriggerReset:
		return sfx.CueRealityReset, true
	case CmdActivateResetLock:
		return sfx.CueMenacing, true
	default:
		return 0, false
	}
}
