package stand

// Retarget describes what a heat-seeking tick did.
type Retarget struct {
	From        TargetID
	To          TargetID
	Moved       bool // The bomb left a dead target for a new one
	Deactivated bool // No target was left; the bomb is gone
}

// ActivateHeatSeeking deploys the heat-seeking bomb on the hottest alive
// target. Any effect already on that target is displaced.
func (e *Engine) ActivateHeatSeeking() (TargetID, error) {
	if e.heatSeekingActive {
		return 0, modeError("activate_heat_seeking", ErrAlreadyActive)
	}
	id, ok := e.hottest()
	if !ok {
		return 0, modeError("activate_heat_seeking", ErrNoValidTargets)
	}
	e.attachHeatSeeking(id)
	return id, nil
}

// HeatSeekingTarget returns the target currently carrying the heat-seeking bomb.
func (e *Engine) HeatSeekingTarget() (TargetID, bool) {
	for id, eff := range e.effects {
		if eff.Kind == EffectHeatSeeking {
			return id, true
		}
	}
	return 0, false
}

// TickHeatSeeking re-evaluates the heat-seeking bomb. It is a no-op while
// the ability is inactive or while its current target is still alive.
// When the target has died the bomb moves to the hottest alive target,
// displacing whatever it carried, and when none remains the ability shuts
// down.
func (e *Engine) TickHeatSeeking() Retarget {
	if !e.heatSeekingActive {
		return Retarget{}
	}

	from, ok := e.HeatSeekingTarget()
	if ok {
		if t := e.targets.get(from); t != nil && t.Alive {
			return Retarget{From: from, To: from}
		}
		delete(e.effects, from)
	}

	to, found := e.hottest()
	if !found {
		e.heatSeekingActive = false
		return Retarget{From: from, Deactivated: true}
	}
	e.attachHeatSeeking(to)
	return Retarget{From: from, To: to, Moved: true}
}

// attachHeatSeeking puts the heat-seeking bomb on id, replacing its effect.
func (e *Engine) attachHeatSeeking(id TargetID) {
	e.removeEffect(id)
	e.effects[id] = newEffect(EffectHeatSeeking, id, e.now())
	e.heatSeekingActive = true
}

// hottest picks the alive target with the highest heat. Ties go to the
// lowest id.
func (e *Engine) hottest() (TargetID, bool) {
	var best Target
	found := false
	for t := range e.targets.AllAlive() {
		if !found || t.Heat > best.Heat || (t.Heat == best.Heat && t.ID < best.ID) {
			best = t
			found = true
		}
	}
	return best.ID, found
}
