package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/samdwyer/standbattle/internal/battle"
	"github.com/samdwyer/standbattle/internal/stand"
	"github.com/samdwyer/standbattle/internal/standdata"
)

// Narrator writes a running commentary of battle events.
type Narrator struct {
	w      io.Writer
	roster *standdata.Roster
	phase  battle.Phase
	begun  bool
	err    error
}

// NewNarrator creates a narrator writing to w. The roster supplies names.
func NewNarrator(w io.Writer, roster *standdata.Roster) *Narrator {
	return &Narrator{w: w, roster: roster}
}

// Err returns the first write error, if any.
func (n *Narrator) Err() error {
	return n.err
}

func (n *Narrator) printf(format string, args ...any) {
	if n.err != nil {
		return
	}
	_, n.err = fmt.Fprintf(n.w, format, args...)
}

// Intro prints the stand user's introduction.
func (n *Narrator) Intro(p *standdata.Profile) {
	if p == nil {
		return
	}
	n.printf("%s: %s Stand Simulation\n", p.User, p.Stand)
	if stats, err := p.StandStats(); err == nil {
		n.printf("Power %s | Speed %s | Range %s | Durability %s | Precision %s | Potential %s\n",
			stats.DestructivePower, stats.Speed, stats.Range,
			stats.Durability, stats.Precision, stats.DevelopmentPotential)
	}
	if p.Cry != "" {
		n.printf("%s\n", strings.ToUpper(p.Cry))
	}
}

// Narrate prints one event, opening a banner when the phase changes.
func (n *Narrator) Narrate(ev battle.Event) {
	if !n.begun || ev.Phase != n.phase {
		n.begun = true
		n.phase = ev.Phase
		title := ev.Phase.Title()
		n.printf("\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	}
	n.printf("%s\n", Describe(ev, n.name))
	if cue, ok := ev.Cue(); ok {
		n.printf("  ~ %s\n", cue.Caption())
	}
	if ev.Explosion != nil {
		n.blastDetails(*ev.Explosion)
	}
	if ev.Status != nil && ev.Phase == battle.PhaseDone {
		n.finalStatus(*ev.Status)
	}
}

func (n *Narrator) blastDetails(x stand.Explosion) {
	if n.roster == nil {
		return
	}
	center := n.roster.GetByID(uint32(x.TargetID))
	for _, id := range x.Caught {
		def := n.roster.GetByID(uint32(id))
		if center == nil || def == nil {
			continue
		}
		dist := def.Target().Position.Distance(center.Target().Position)
		n.printf("  caught %s at %.1f (would take %d)\n",
			def.Name, dist, stand.ProjectedDamage(x.Damage, dist))
	}
}

func (n *Narrator) finalStatus(s stand.Status) {
	n.printf("Active bombs: %d\n", s.ActiveEffects)
	n.printf("Sheer Heart Attack: %v\n", s.HeatSeekingActive)
	n.printf("Bites the Dust: %v\n", s.ResetLockActive)
	n.printf("Time loops: %d\n", s.ResetCount)
	n.printf("Alive targets: %d\n", s.AliveTargets)
}

func (n *Narrator) name(id stand.TargetID) string {
	return targetName(n.roster, id)
}

func targetName(roster *standdata.Roster, id stand.TargetID) string {
	if roster != nil {
		if def := roster.GetByID(uint32(id)); def != nil {
			return def.Name
		}
	}
	return fmt.Sprintf("target %d", id)
}

// Describe renders a single event as one line of text.
func Describe(ev battle.Event, name func(stand.TargetID) string) string {
	if ev.Err != nil {
		return fmt.Sprintf("x %s failed: %v", ev.Command, ev.Err)
	}

	gesture := stand.GestureNone
	if kind, ok := ev.Kind(); ok {
		gesture = kind.Gesture()
	}

	switch ev.Command {
	case battle.CmdAddTarget:
		return fmt.Sprintf("+ Adding target: %s", name(ev.TargetID))
	case battle.CmdPlaceDirect:
		return fmt.Sprintf("Primary bomb placed on %s (%s)", name(ev.TargetID), gesture)
	case battle.CmdArmTimer:
		return fmt.Sprintf("Fuse set: %s goes off in %s", name(ev.TargetID), ev.Fuse)
	case battle.CmdDefuse:
		return fmt.Sprintf("Bomb on %s defused", name(ev.TargetID))
	case battle.CmdDetonate:
		x := ev.Explosion
		return fmt.Sprintf("BOOM! %s destroyed: damage %d, radius %.1f, %d caught in blast",
			name(x.TargetID), x.Damage, x.Radius, len(x.Caught))
	case battle.CmdActivateHeatSeeking:
		return fmt.Sprintf("Sheer Heart Attack activated (%s)! Targeting hottest enemy: %s", gesture, name(ev.TargetID))
	case battle.CmdTickHeatSeeking:
		r := ev.Retarget
		switch {
		case r == nil:
			return fmt.Sprintf("Update cycle %d", ev.Tick)
		case r.Deactivated:
			return fmt.Sprintf("Update cycle %d: Sheer Heart Attack deactivated, no targets", ev.Tick)
		case r.Moved:
			return fmt.Sprintf("Update cycle %d: Sheer Heart Attack retargeting to %s", ev.Tick, name(r.To))
		case r.To != 0:
			return fmt.Sprintf("Update cycle %d: still chasing %s", ev.Tick, name(r.To))
		default:
			return fmt.Sprintf("Update cycle %d", ev.Tick)
		}
	case battle.CmdActivateResetLock:
		return fmt.Sprintf("Bites the Dust activated on %s (%s)!", name(ev.TargetID), gesture)
	case battle.CmdTriggerReset:
		r := ev.Reset
		names := make([]string, len(r.ResetTargets))
		for i, id := range r.ResetTargets {
			names[i] = name(id)
		}
		return fmt.Sprintf("Time loop #%d triggered! Reality reset for: %s", r.Count, strings.Join(names, ", "))
	case battle.CmdStatus:
		s := ev.Status
		return fmt.Sprintf("Status: %d active bombs, %d alive targets", s.ActiveEffects, s.AliveTargets)
	default:
		return string(ev.Command)
	}
}
