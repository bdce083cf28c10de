package stand

import (
	"sync"
	"time"
)

// Locked serialises access to an Engine behind a single mutex, so the
// roster, the effects and the ability modes always change together.
type Locked struct {
	mu  sync.Mutex
	eng *Engine
}

// NewLocked wraps eng. The caller must not use eng directly afterwards.
func NewLocked(eng *Engine) *Locked {
	return &Locked{eng: eng}
}

// Do runs fn with exclusive access to the engine.
func (l *Locked) Do(fn func(*Engine)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.eng)
}

func (l *Locked) AddTarget(t Target) {
	l.Do(func(e *Engine) { e.AddTarget(t) })
}

func (l *Locked) Target(id TargetID) (t Target, err error) {
	l.Do(func(e *Engine) { t, err = e.Target(id) })
	return t, err
}

func (l *Locked) PlaceDirect(id TargetID) (err error) {
	l.Do(func(e *Engine) { err = e.PlaceDirect(id) })
	return err
}

func (l *Locked) Detonate(id TargetID) (x Explosion, err error) {
	l.Do(func(e *Engine) { x, err = e.Detonate(id) })
	return x, err
}

func (l *Locked) Defuse(id TargetID) (eff Effect, err error) {
	l.Do(func(e *Engine) { eff, err = e.Defuse(id) })
	return eff, err
}

func (l *Locked) ArmTimer(id TargetID, delay time.Duration) (err error) {
	l.Do(func(e *Engine) { err = e.ArmTimer(id, delay) })
	return err
}

func (l *Locked) Effect(id TargetID) (eff Effect, ok bool) {
	l.Do(func(e *Engine) { eff, ok = e.Effect(id) })
	return eff, ok
}

func (l *Locked) DueTimers(now time.Time) (due []TargetID) {
	l.Do(func(e *Engine) { due = e.DueTimers(now) })
	return due
}

func (l *Locked) ActivateHeatSeeking() (id TargetID, err error) {
	l.Do(func(e *Engine) { id, err = e.ActivateHeatSeeking() })
	return id, err
}

func (l *Locked) TickHeatSeeking() (r Retarget) {
	l.Do(func(e *Engine) { r = e.TickHeatSeeking() })
	return r
}

func (l *Locked) ActivateResetLock(id TargetID) (err error) {
	l.Do(func(e *Engine) { err = e.ActivateResetLock(id) })
	return err
}

func (l *Locked) TriggerReset() (r ResetResult, err error) {
	l.Do(func(e *Engine) { r, err = e.TriggerReset() })
	return r, err
}

func (l *Locked) Status() (s Status) {
	l.Do(func(e *Engine) { s = e.Status() })
	return s
}
