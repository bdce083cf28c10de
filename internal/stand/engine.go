package stand

import (
	"maps"
	"slices"
	"time"
)

// ExplosionRadius is the blast radius of every detonation.
const ExplosionRadius = 5.0

// Engine owns the target roster, the active effects, and the ability modes
// of one stand user. Every operation runs to completion and either applies
// all of its changes or none of them.
//
// Engine is not safe for concurrent use; wrap it in Locked for that.
type Engine struct {
	targets *Registry
	effects map[TargetID]*Effect

	heatSeekingActive bool
	resetLock         TargetID
	resetLocked       bool
	resetCount        uint32

	now func() time.Time
}

// New creates an engine that stamps effects with the wall clock.
func New() *Engine {
	return NewWithClock(time.Now)
}

// NewWithClock creates an engine that reads time from now.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{
		targets: NewRegistry(),
		effects: make(map[TargetID]*Effect),
		now:     now,
	}
}

// Explosion is the outcome of a detonation.
type Explosion struct {
	TargetID TargetID
	Kind     EffectKind
	Damage   uint32
	Radius   float64
	Caught   []TargetID // Other alive targets inside the radius; not damaged
}

// AddTarget registers a target, replacing any target with the same id.
func (e *Engine) AddTarget(t Target) {
	e.targets.Register(t)
}

// Target returns a copy of a registered target.
func (e *Engine) Target(id TargetID) (Target, error) {
	return e.targets.Lookup(id)
}

// Targets exposes the roster for read-only iteration.
func (e *Engine) Targets() *Registry {
	return e.targets
}

// Effect returns a copy of the effect keyed to a target.
func (e *Engine) Effect(id TargetID) (Effect, bool) {
	eff, ok := e.effects[id]
	if !ok {
		return Effect{}, false
	}
	return *eff, true
}

// Effects returns copies of all active effects ordered by target id.
func (e *Engine) Effects() []Effect {
	out := make([]Effect, 0, len(e.effects))
	for _, id := range slices.Sorted(maps.Keys(e.effects)) {
		out = append(out, *e.effects[id])
	}
	return out
}

// HeatSeekingActive reports whether the heat-seeking bomb is deployed.
func (e *Engine) HeatSeekingActive() bool {
	return e.heatSeekingActive
}

// ResetLockTarget returns the target exempt from reality resets, if any.
func (e *Engine) ResetLockTarget() (TargetID, bool) {
	return e.resetLock, e.resetLocked
}

// ResetCount returns how many reality resets have been triggered.
func (e *Engine) ResetCount() uint32 {
	return e.resetCount
}

// ApplyDamage lowers a target's health, clamping at zero.
// It returns the target after the change.
func (e *Engine) ApplyDamage(id TargetID, amount int) (Target, error) {
	t := e.targets.get(id)
	if t == nil {
		return Target{}, opError("damage", id, ErrNotFound)
	}
	if amount > 0 {
		t.setHealth(t.Health - amount)
	}
	return *t, nil
}

// PlaceDirect turns a target into the first bomb. Only one direct bomb may
// exist at a time, and the target must not already carry another effect.
func (e *Engine) PlaceDirect(id TargetID) error {
	if e.hasKind(EffectDirect) {
		return opError("place_direct", id, ErrEffectConflict)
	}
	if !e.targets.Has(id) {
		return opError("place_direct", id, ErrNotFound)
	}
	if _, occupied := e.effects[id]; occupied {
		return opError("place_direct", id, ErrEffectConflict)
	}
	e.effects[id] = newEffect(EffectDirect, id, e.now())
	return nil
}

// Detonate consumes the effect on a target and destroys the target.
// Other alive targets inside the blast radius are reported but untouched.
func (e *Engine) Detonate(id TargetID) (Explosion, error) {
	eff, ok := e.effects[id]
	if !ok {
		return Explosion{}, opError("detonate", id, ErrNoEffect)
	}
	t := e.targets.get(id)

	e.removeEffect(id)
	t.setHealth(0)

	return Explosion{
		TargetID: id,
		Kind:     eff.Kind,
		Damage:   eff.Power,
		Radius:   ExplosionRadius,
		Caught:   e.inRadius(id, t.Position, ExplosionRadius),
	}, nil
}

// Defuse removes the effect on a target without detonating it.
// The target is left as it was.
func (e *Engine) Defuse(id TargetID) (Effect, error) {
	eff, ok := e.effects[id]
	if !ok {
		return Effect{}, opError("defuse", id, ErrNoEffect)
	}
	e.removeEffect(id)
	return *eff, nil
}

// ArmTimer sets a fuse on the effect attached to a target. The fuse runs
// from the effect's creation time.
func (e *Engine) ArmTimer(id TargetID, delay time.Duration) error {
	if delay <= 0 {
		return opError("arm_timer", id, ErrInvalidDelay)
	}
	eff, ok := e.effects[id]
	if !ok {
		return opError("arm_timer", id, ErrNoEffect)
	}
	eff.Fuse = delay
	return nil
}

// DueTimers returns, in ascending order, the targets whose fuse has run
// out at now. Nothing is detonated; the caller decides.
func (e *Engine) DueTimers(now time.Time) []TargetID {
	var due []TargetID
	for id, eff := range e.effects {
		if eff.Due(now) {
			due = append(due, id)
		}
	}
	slices.Sort(due)
	return due
}

// removeEffect drops the effect keyed to id and keeps the heat-seeking
// flag in step with the registry.
func (e *Engine) removeEffect(id TargetID) {
	eff, ok := e.effects[id]
	if !ok {
		return
	}
	delete(e.effects, id)
	if eff.Kind == EffectHeatSeeking {
		e.heatSeekingActive = false
	}
}

func (e *Engine) hasKind(kind EffectKind) bool {
	for _, eff := range e.effects {
		if eff.Kind == kind {
			return true
		}
	}
	return false
}

// inRadius returns the alive targets other than exclude within radius of
// center, inclusive of the boundary, in ascending id order.
func (e *Engine) inRadius(exclude TargetID, center Vec3, radius float64) []TargetID {
	var ids []TargetID
	for t := range e.targets.AllAlive() {
		if t.ID == exclude {
			continue
		}
		if t.Position.Distance(center) <= radius {
			ids = append(ids, t.ID)
		}
	}
	slices.Sort(ids)
	return ids
}
