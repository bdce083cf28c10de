package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/standbattle/internal/battle"
	"github.com/samdwyer/standbattle/internal/stand"
	"github.com/samdwyer/standbattle/internal/standdata"
)

const hpBarWidth = 20

// Board draws the roster, attached bombs, and latest event to the screen.
type Board struct {
	screen *Screen
	roster *standdata.Roster
}

// NewBoard creates a board for the given screen.
func NewBoard(screen *Screen, roster *standdata.Roster) *Board {
	return &Board{screen: screen, roster: roster}
}

// Render redraws everything from the engine state and the latest event.
// The engine is read under its lock.
func (b *Board) Render(eng *stand.Locked, ev battle.Event) {
	eng.Do(func(e *stand.Engine) { b.draw(e, ev) })
}

func (b *Board) draw(eng *stand.Engine, ev battle.Event) {
	b.screen.Clear()

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	b.screen.DrawText(0, 0, ev.Phase.Title(), titleStyle)

	row := 2
	for _, id := range eng.Targets().IDs() {
		t, err := eng.Target(id)
		if err != nil {
			continue
		}
		b.drawTarget(row, t, eng)
		row++
	}

	row++
	s := eng.Status()
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	b.screen.DrawText(0, row, fmt.Sprintf(
		"bombs %d | heat-seeking %v | lock %v | loops %d | alive %d",
		s.ActiveEffects, s.HeatSeekingActive, s.ResetLockActive, s.ResetCount, s.AliveTargets,
	), statusStyle)

	row += 2
	msgStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if ev.Err != nil {
		msgStyle = msgStyle.Foreground(tcell.ColorRed)
	}
	b.screen.DrawText(0, row, Describe(ev, b.name), msgStyle)

	b.screen.Show()
}

func (b *Board) drawTarget(row int, t stand.Target, eng *stand.Engine) {
	nameStyle := tcell.StyleDefault.Foreground(b.roster.Color(t.ID))
	if !t.Alive {
		nameStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray).StrikeThrough(true)
	}
	x := b.screen.DrawText(0, row, fmt.Sprintf("%-20.20s", t.Name), nameStyle)

	x = b.screen.DrawText(x+1, row, hpBar(t.Health), hpStyle(t.Health))
	x = b.screen.DrawText(x+1, row, fmt.Sprintf("%3d hp %4.1fC", t.Health, t.Heat), tcell.StyleDefault)

	if eff, ok := eng.Effect(t.ID); ok {
		b.screen.DrawText(x+2, row, effectMarker(eff.Kind), effectStyle(eff.Kind))
	}
}

func (b *Board) name(id stand.TargetID) string {
	return targetName(b.roster, id)
}

// hpBar returns a fixed-width bar for health out of stand.FullHealth.
func hpBar(health int) string {
	filled := health * hpBarWidth / stand.FullHealth
	filled = max(0, min(filled, hpBarWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", hpBarWidth-filled) + "]"
}

func hpStyle(health int) tcell.Style {
	switch {
	case health > stand.FullHealth/2:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case health > 0:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
}

func effectMarker(k stand.EffectKind) string {
	switch k {
	case stand.EffectDirect:
		return "* BOMB"
	case stand.EffectHeatSeeking:
		return "@ SHEER HEART ATTACK"
	case stand.EffectRealityReset:
		return "% BITES THE DUST"
	default:
		return "?"
	}
}

func effectStyle(k stand.EffectKind) tcell.Style {
	switch k {
	case stand.EffectDirect:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	case stand.EffectHeatSeeking:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case stand.EffectRealityReset:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	default:
		return tcell.StyleDefault
	}
}
