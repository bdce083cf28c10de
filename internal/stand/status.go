package stand

// Status is a read-only snapshot of the engine.
type Status struct {
	ActiveEffects     int
	HeatSeekingActive bool
	ResetLockActive   bool
	ResetCount        uint32
	AliveTargets      int
}

// Status reports the current engine state without changing it.
func (e *Engine) Status() Status {
	alive := 0
	for range e.targets.AllAlive() {
		alive++
	}
	return Status{
		ActiveEffects:     len(e.effects),
		HeatSeekingActive: e.heatSeekingActive,
		ResetLockActive:   e.resetLocked,
		ResetCount:        e.resetCount,
		AliveTargets:      alive,
	}
}
