package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/standbattle/internal/battle"
	"github.com/samdwyer/standbattle/internal/stand"
	"github.com/samdwyer/standbattle/internal/standdata"
)

func runDemo(t *testing.T, observe func(*battle.Battle, battle.Event)) *battle.Battle {
	t.Helper()
	b, err := battle.New(battle.DefaultConfig())
	if err != nil {
		t.Fatalf("battle.New failed: %v", err)
	}
	b.Observe(func(ev battle.Event) { observe(b, ev) })
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return b
}

func TestNarratorDemoBattle(t *testing.T) {
	var buf bytes.Buffer
	var n *Narrator
	runDemo(t, func(b *battle.Battle, ev battle.Event) {
		if n == nil {
			n = NewNarrator(&buf, b.Roster)
			n.Intro(b.Profile)
		}
		n.Narrate(ev)
	})
	if err := n.Err(); err != nil {
		t.Fatalf("Narrator write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Yoshikage Kira: Queen Killer Stand Simulation",
		"Power A | Speed B | Range D",
		"KILLER QUEEN!",
		"Battle Phase 1: Primary Bomb",
		"+ Adding target: Koichi Hirose",
		"Primary bomb placed on Josuke Higashikata (thumb press)",
		"*Click* - Bomb armed",
		"BOOM! Josuke Higashikata destroyed: damage 100, radius 5.0",
		"Sheer Heart Attack activated (finger snap)! Targeting hottest enemy: Okuyasu Nijimura",
		"Bites the Dust activated on Koichi Hirose (hand clench)!",
		"Update cycle 3: still chasing Okuyasu Nijimura",
		"Time loop #1 triggered! Reality reset for: Josuke Higashikata, Okuyasu Nijimura",
		"Time loops: 1",
		"Alive targets: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Narration missing %q\n%s", want, out)
		}
	}
	if strings.Count(out, "Battle Phase") != 3 {
		t.Errorf("Expected 3 phase banners, got %d", strings.Count(out, "Battle Phase"))
	}
}

func TestNarratorBlastDetails(t *testing.T) {
	roster, err := standdata.NewRoster([]standdata.TargetDef{
		{ID: 1, Name: "Center", Position: [3]float64{0, 0, 0}, Health: 100},
		{ID: 2, Name: "Nearby", Position: [3]float64{3, 4, 0}, Health: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	n := NewNarrator(&buf, roster)
	n.Narrate(battle.Event{
		Phase:     battle.PhaseFirstBomb,
		Command:   battle.CmdDetonate,
		TargetID:  1,
		Explosion: &stand.Explosion{TargetID: 1, Damage: 100, Radius: 5, Caught: []stand.TargetID{2}},
	})
	if !strings.Contains(buf.String(), "caught Nearby at 5.0 (would take 50)") {
		t.Errorf("Unexpected narration:\n%s", buf.String())
	}
}

func TestDescribeGestures(t *testing.T) {
	name := func(id stand.TargetID) string { return fmt.Sprintf("T%d", id) }
	tests := []struct {
		ev   battle.Event
		want string
	}{
		{battle.Event{Command: battle.CmdPlaceDirect, TargetID: 1}, "Primary bomb placed on T1 (thumb press)"},
		{battle.Event{Command: battle.CmdActivateHeatSeeking, TargetID: 2}, "Sheer Heart Attack activated (finger snap)! Targeting hottest enemy: T2"},
		{battle.Event{Command: battle.CmdActivateResetLock, TargetID: 3}, "Bites the Dust activated on T3 (hand clench)!"},
		{battle.Event{Command: battle.CmdArmTimer, TargetID: 1, Fuse: 1500 * time.Millisecond}, "Fuse set: T1 goes off in 1.5s"},
		{battle.Event{Command: battle.CmdDefuse, TargetID: 1}, "Bomb on T1 defused"},
	}

	for _, tt := range tests {
		if got := Describe(tt.ev, name); got != tt.want {
			t.Errorf("Describe(%s) = %q, want %q", tt.ev.Command, got, tt.want)
		}
	}
}

func TestDescribeFailure(t *testing.T) {
	ev := battle.Event{Command: battle.CmdTriggerReset, Err: stand.ErrNotActive}
	got := Describe(ev, func(stand.TargetID) string { return "" })
	if got != "x trigger_reset failed: ability not active" {
		t.Errorf("Describe() = %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestNarratorStickyError(t *testing.T) {
	n := NewNarrator(failingWriter{}, nil)
	n.Narrate(battle.Event{Command: battle.CmdStatus, Status: &stand.Status{}})
	n.Narrate(battle.Event{Command: battle.CmdStatus, Status: &stand.Status{}})
	if n.Err() == nil || n.Err().Error() != "disk full" {
		t.Errorf("Expected sticky write error, got %v", n.Err())
	}
}

func TestHPBar(t *testing.T) {
	tests := []struct {
		health int
		want   string
	}{
		{100, "[" + strings.Repeat("#", 20) + "]"},
		{50, "[" + strings.Repeat("#", 10) + strings.Repeat(" ", 10) + "]"},
		{0, "[" + strings.Repeat(" ", 20) + "]"},
		{250, "[" + strings.Repeat("#", 20) + "]"},
	}
	for _, tt := range tests {
		if got := hpBar(tt.health); got != tt.want {
			t.Errorf("hpBar(%d) = %q, want %q", tt.health, got, tt.want)
		}
	}
}

// screenRow reads one row of a simulation screen as text.
func screenRow(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestBoardRender(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom failed: %v", err)
	}
	defer screen.Close()
	sim.SetSize(100, 25)

	var board *Board
	var afterDetonate []string
	runDemo(t, func(b *battle.Battle, ev battle.Event) {
		if board == nil {
			board = NewBoard(screen, b.Roster)
		}
		board.Render(b.Engine(), ev)
		if ev.Command == battle.CmdDetonate {
			for y := 0; y < 10; y++ {
				afterDetonate = append(afterDetonate, screenRow(sim, y))
			}
		}
	})

	if afterDetonate[0] != "Battle Phase 1: Primary Bomb" {
		t.Errorf("Title row = %q", afterDetonate[0])
	}
	if !strings.HasPrefix(afterDetonate[2], "Josuke Higashikata") || !strings.Contains(afterDetonate[2], "  0 hp") {
		t.Errorf("Josuke row = %q", afterDetonate[2])
	}
	if strings.Contains(afterDetonate[2], "BOMB") {
		t.Error("Detonated bomb should no longer be shown")
	}

	final := screenRow(sim, 0)
	if final != "Final Battle Status" {
		t.Errorf("Final title = %q", final)
	}
	if koichi := screenRow(sim, 4); !strings.Contains(koichi, "BITES THE DUST") {
		t.Errorf("Koichi row should show the reset bomb, got %q", koichi)
	}
	if status := screenRow(sim, 6); !strings.Contains(status, "loops 1") {
		t.Errorf("Status row = %q", status)
	}
}
