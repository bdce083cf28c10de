package stand

import (
	"errors"
	"testing"
	"time"
)

func TestActivateHeatSeekingPicksHottest(t *testing.T) {
	e, _ := newTestEngine()
	e.AddTarget(target(1, 0, 0, 0, 36.5)) // A
	e.AddTarget(target(2, 9, 0, 0, 37.2)) // B

	id, err := e.ActivateHeatSeeking()
	if err != nil {
		t.Fatalf("ActivateHeatSeeking failed: %v", err)
	}
	if id != 2 {
		t.Errorf("Expected hottest target 2, got %d", id)
	}
	eff, ok := e.Effect(2)
	if !ok || eff.Kind != EffectHeatSeeking || eff.Power != 80 {
		t.Errorf("Unexpected effect %+v", eff)
	}
	if !e.HeatSeekingActive() {
		t.Error("Heat-seeking should be active")
	}
	if got, ok := e.HeatSeekingTarget(); !ok || got != 2 {
		t.Errorf("HeatSeekingTarget() = %d, %v; want 2, true", got, ok)
	}
}

func TestActivateHeatSeekingTwice(t *testing.T) {
	e, _ := newTestEngine()
	demoRoster(e)
	e.ActivateHeatSeeking()

	_, err := e.ActivateHeatSeeking()
	if !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("Expected ErrAlreadyActive, got %v", err)
	}
	if len(e.Effects()) != 1 {
		t.Errorf("Expected 1 effect, got %d", len(e.Effects()))
	}
}

func TestActivateHeatSeekingNoTargets(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
	}{
		{"empty roster", func(e *Engine) {}},
		{"all dead", func(e *Engine) {
			e.AddTarget(target(1, 0, 0, 0, 37))
			e.ApplyDamage(1, 100)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine()
			tt.setup(e)
			_, err := e.ActivateHeatSeeking()
			if !errors.Is(err, ErrNoValidTargets) {
				t.Errorf("Expected ErrNoValidTargets, got %v", err)
			}
			if e.HeatSeekingActive() {
				t.Error("Heat-seeking must stay inactive")
			}
		})
	}
}

func TestHeatSeekingTieGoesToLowestID(t *testing.T) {
	e, _ := newTestEngine()
	e.AddTarget(target(7, 0, 0, 0, 37))
	e.AddTarget(target(3, 0, 0, 0, 37))
	e.AddTarget(target(5, 0, 0, 0, 37))

	id, _ := e.ActivateHeatSeeking()
	if id != 3 {
		t.Errorf("Expected tie to go to id 3, got %d", id)
	}
}

func TestTickRetargetsAfterDeath(t *testing.T) {
	e, clock := newTestEngine()
	e.AddTarget(target(1, 0, 0, 0, 36.5)) // A
	e.AddTarget(target(2, 9, 0, 0, 37.2)) // B
	e.ActivateHeatSeeking()

	// Still alive: nothing moves
	r := e.TickHeatSeeking()
	if r.Moved || r.Deactivated || r.To != 2 {
		t.Errorf("Expected no movement, got %+v", r)
	}

	e.ApplyDamage(2, 1000)
	clock.Advance(500 * time.Millisecond)

	r = e.TickHeatSeeking()
	if !r.Moved || r.From != 2 || r.To != 1 {
		t.Errorf("Expected move 2 -> 1, got %+v", r)
	}
	if _, ok := e.Effect(2); ok {
		t.Error("Old heat-seeking effect should be removed")
	}
	eff, ok := e.Effect(1)
	if !ok || eff.Kind != EffectHeatSeeking || eff.Power != 80 {
		t.Fatalf("Expected heat-seeking effect on 1, got %+v", eff)
	}
	if !eff.CreatedAt.Equal(clock.Now()) {
		t.Error("Retargeted effect should carry a fresh timestamp")
	}
}

func TestTickDeactivatesWithoutTargets(t *testing.T) {
	e, _ := newTestEngine()
	e.AddTarget(target(1, 0, 0, 0, 36.5))
	e.ActivateHeatSeeking()
	e.ApplyDamage(1, 1000)

	r := e.TickHeatSeeking()
	if !r.Deactivated || r.From != 1 {
		t.Errorf("Expected deactivation, got %+v", r)
	}
	if e.HeatSeekingActive() {
		t.Error("Heat-seeking should be inactive")
	}
	if len(e.Effects()) != 0 {
		t.Errorf("Expected no lingering effects, got %v", e.Effects())
	}
}

func TestTickInactiveIsNoop(t *testing.T) {
	e, _ := newTestEngine()
	demoRoster(e)
	if r := e.TickHeatSeeking(); r != (Retarget{}) {
		t.Errorf("Expected zero Retarget, got %+v", r)
	}
	if len(e.Effects()) != 0 {
		t.Error("Tick while inactive must not create effects")
	}
}

func TestActivateHeatSeekingDisplacesEffect(t *testing.T) {
	tests := []struct {
		name  string
		heats map[TargetID]float64
		bomb  TargetID
		want  TargetID
	}{
		{"hottest carries direct bomb", map[TargetID]float64{1: 36.5, 2: 37.2}, 2, 2},
		{"sole survivor carries direct bomb", map[TargetID]float64{1: 36.5}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine()
			for id, heat := range tt.heats {
				e.AddTarget(target(id, 0, 0, 0, heat))
			}
			if err := e.PlaceDirect(tt.bomb); err != nil {
				t.Fatalf("PlaceDirect failed: %v", err)
			}

			id, err := e.ActivateHeatSeeking()
			if err != nil {
				t.Fatalf("ActivateHeatSeeking failed: %v", err)
			}
			if id != tt.want {
				t.Errorf("Expected heat-seeking on %d, got %d", tt.want, id)
			}
			if eff, _ := e.Effect(id); eff.Kind != EffectHeatSeeking {
				t.Errorf("Expected heat-seeking bomb on %d, got %v", id, eff.Kind)
			}
			if !e.HeatSeekingActive() {
				t.Error("Heat-seeking should be active")
			}
			if err := e.PlaceDirect(tt.bomb); !errors.Is(err, ErrEffectConflict) {
				t.Errorf("Direct bomb should be gone but target stays occupied, got %v", err)
			}
		})
	}
}

func TestTickRetargetsOntoOccupiedTarget(t *testing.T) {
	e, _ := newTestEngine()
	demoRoster(e) // heat: 1=37.2, 2=36.8, 3=36.5
	e.ActivateHeatSeeking()
	e.PlaceDirect(2)
	e.ApplyDamage(1, 1000)

	r := e.TickHeatSeeking()
	if !r.Moved || r.To != 2 {
		t.Errorf("Expected retarget to hottest survivor 2, got %+v", r)
	}
	if eff, _ := e.Effect(2); eff.Kind != EffectHeatSeeking {
		t.Errorf("Expected heat-seeking to displace the direct bomb, got %v", eff.Kind)
	}
	if !e.HeatSeekingActive() {
		t.Error("Heat-seeking must stay active while targets remain")
	}
	if len(e.Effects()) != 1 {
		t.Errorf("Expected 1 effect, got %d", len(e.Effects()))
	}
}

func TestTickRetargetsOntoSoleSurvivor(t *testing.T) {
	e, _ := newTestEngine()
	e.AddTarget(target(1, 0, 0, 0, 37.2))
	e.AddTarget(target(2, 9, 0, 0, 36.5))
	e.ActivateHeatSeeking()
	e.ActivateResetLock(2)
	e.ApplyDamage(1, 1000)

	r := e.TickHeatSeeking()
	if r.Deactivated || r.To != 2 {
		t.Errorf("Expected retarget to 2, got %+v", r)
	}
	if lock, ok := e.ResetLockTarget(); !ok || lock != 2 {
		t.Error("Displacing the reset bomb must keep the lock")
	}
}
