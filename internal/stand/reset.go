package stand

import "time"

// ResetResult is the outcome of a reality reset.
type ResetResult struct {
	Count        uint32
	At           time.Time
	ResetTargets []TargetID // Every registered target except the locked one
}

// ActivateResetLock places the reality-reset bomb on a target, exempting it
// from future resets. Any effect already on that target is displaced; if it
// was the heat-seeking bomb, heat-seeking ends.
func (e *Engine) ActivateResetLock(id TargetID) error {
	if e.resetLocked {
		return opError("activate_reset_lock", id, ErrAlreadyActive)
	}
	if !e.targets.Has(id) {
		return opError("activate_reset_lock", id, ErrNotFound)
	}
	e.removeEffect(id)
	e.effects[id] = newEffect(EffectRealityReset, id, e.now())
	e.resetLock = id
	e.resetLocked = true
	return nil
}

// TriggerReset revives and heals every target except the locked one and
// clears every effect except the reality-reset bomb. The lock stays in
// place, so a reset can be triggered again and again.
func (e *Engine) TriggerReset() (ResetResult, error) {
	if !e.resetLocked {
		return ResetResult{}, modeError("trigger_reset", ErrNotActive)
	}
	e.resetCount++

	reset := make([]TargetID, 0, e.targets.Count())
	for _, id := range e.targets.IDs() {
		if id == e.resetLock {
			continue
		}
		e.targets.get(id).setHealth(FullHealth)
		reset = append(reset, id)
	}

	for id, eff := range e.effects {
		if id == e.resetLock && eff.Kind == EffectRealityReset {
			continue
		}
		delete(e.effects, id)
	}
	e.heatSeekingActive = false

	return ResetResult{
		Count:        e.resetCount,
		At:           e.now(),
		ResetTargets: reset,
	}, nil
}
