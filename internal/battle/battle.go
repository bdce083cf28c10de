// Package battle drives a scripted fight against the stand engine and
// records what happened for narration.
package battle

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/standbattle/internal/stand"
	"github.com/samdwyer/standbattle/internal/standdata"
	"github.com/samdwyer/standbattle/internal/telemetry"
)

// Battle holds one run of the scripted battle.
type Battle struct {
	ID      uuid.UUID
	Profile *standdata.Profile
	Roster  *standdata.Roster

	cfg     Config
	logger  *zap.Logger
	engine  *stand.Locked
	now     func() time.Time
	phase   Phase
	events  []Event
	observe func(Event)
}

// New creates a battle from cfg, loading the roster and stand profile.
func New(cfg Config) (*Battle, error) {
	var (
		roster *standdata.Roster
		err    error
	)
	if cfg.RosterPath != "" {
		roster, err = standdata.LoadRosterFile(cfg.RosterPath)
	} else {
		roster, err = standdata.LoadRoster()
	}
	if err != nil {
		return nil, err
	}

	profile, err := standdata.LoadProfile()
	if err != nil {
		return nil, err
	}

	return NewWithEngine(cfg, stand.New(), roster, profile), nil
}

// NewWithEngine creates a battle around an existing engine. The battle takes
// ownership of eng and guards it with a lock; read it through Engine.
func NewWithEngine(cfg Config, eng *stand.Engine, roster *standdata.Roster, profile *standdata.Profile) *Battle {
	id := uuid.New()
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Battle{
		ID:      id,
		Profile: profile,
		Roster:  roster,
		cfg:     cfg,
		logger:  logger.With(zap.String("battle", id.String())),
		engine:  stand.NewLocked(eng),
		now:     time.Now,
		phase:   PhaseSetup,
	}
}

// Observe registers fn to be called after every command.
func (b *Battle) Observe(fn func(Event)) {
	b.observe = fn
}

// Engine returns the engine the battle drives.
func (b *Battle) Engine() *stand.Locked {
	return b.engine
}

// Phase returns the phase currently running.
func (b *Battle) Phase() Phase {
	return b.phase
}

// Events returns everything recorded so far.
func (b *Battle) Events() []Event {
	return b.events
}

// Run plays the whole script. Command failures are recorded as events and
// do not stop the battle; only a cancelled context does.
func (b *Battle) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("battle")
	ctx, span := tracer.Start(ctx, "battle.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.id", b.ID.String()),
		attribute.Int("roster.size", b.Roster.Count()),
	)
	b.logger.Info("battle started", zap.Int("targets", b.Roster.Count()))

	steps := []struct {
		phase Phase
		run   func(context.Context)
	}{
		{PhaseSetup, b.setup},
		{PhaseFirstBomb, b.firstBomb},
		{PhaseHeatSeeking, b.heatSeeking},
		{PhaseRealityReset, b.realityReset},
		{PhaseDone, b.finish},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			b.logger.Warn("battle interrupted", zap.Stringer("phase", step.phase), zap.Error(err))
			return err
		}
		b.phase = step.phase
		step.run(ctx)
	}

	s := b.engine.Status()
	span.SetAttributes(
		attribute.Int("events", len(b.events)),
		attribute.Int("alive_targets", s.AliveTargets),
		attribute.Int64("reset_count", int64(s.ResetCount)),
	)
	b.logger.Info("battle finished",
		zap.Int("events", len(b.events)),
		zap.Int("alive_targets", s.AliveTargets),
		zap.Uint32("reset_count", s.ResetCount),
	)
	return nil
}

func (b *Battle) setup(ctx context.Context) {
	for _, t := range b.Roster.Targets() {
		b.engine.AddTarget(t)
		registered, _ := b.engine.Target(t.ID)
		b.record(Event{Command: CmdAddTarget, TargetID: t.ID, Target: &registered})
	}
}

func (b *Battle) firstBomb(ctx context.Context) {
	id := b.cfg.BombTarget
	b.exec(ctx, CmdPlaceDirect, id, func(span trace.Span, ev *Event) error {
		return b.engine.PlaceDirect(id)
	})
	if b.cfg.Fuse > 0 {
		b.exec(ctx, CmdArmTimer, id, func(span trace.Span, ev *Event) error {
			ev.Fuse = b.cfg.Fuse
			span.SetAttributes(attribute.Int64("fuse_ms", b.cfg.Fuse.Milliseconds()))
			return b.engine.ArmTimer(id, b.cfg.Fuse)
		})
	}
	b.status(ctx)

	if b.cfg.Fuse > 0 {
		if err := b.awaitFuse(ctx, id); err != nil {
			// Interrupted before the fuse ran out: leave nothing armed
			b.exec(ctx, CmdDefuse, id, func(span trace.Span, ev *Event) error {
				_, err := b.engine.Defuse(id)
				return err
			})
			return
		}
	} else {
		b.pause()
	}

	b.exec(ctx, CmdDetonate, id, func(span trace.Span, ev *Event) error {
		x, err := b.engine.Detonate(id)
		if err != nil {
			return err
		}
		ev.Explosion = &x
		span.SetAttributes(
			attribute.Int64("damage", int64(x.Damage)),
			attribute.Float64("radius", x.Radius),
			attribute.Int("caught", len(x.Caught)),
		)
		return nil
	})
}

// awaitFuse polls the engine until the bomb on id is due. It returns at
// once when no fuse is armed there, and returns ctx's error if ctx ends first.
func (b *Battle) awaitFuse(ctx context.Context, id stand.TargetID) error {
	eff, ok := b.engine.Effect(id)
	if !ok || eff.Fuse <= 0 {
		return nil
	}
	ticker := time.NewTicker(fusePoll(eff.Fuse))
	defer ticker.Stop()

	for {
		if slices.Contains(b.engine.DueTimers(b.now()), id) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func fusePoll(fuse time.Duration) time.Duration {
	return min(max(fuse/10, time.Millisecond), 50*time.Millisecond)
}

func (b *Battle) heatSeeking(ctx context.Context) {
	b.exec(ctx, CmdActivateHeatSeeking, 0, func(span trace.Span, ev *Event) error {
		id, err := b.engine.ActivateHeatSeeking()
		if err != nil {
			return err
		}
		ev.TargetID = id
		span.SetAttributes(attribute.Int64("target", int64(id)))
		return nil
	})

	for i := 1; i <= b.cfg.Ticks; i++ {
		b.pause()
		b.exec(ctx, CmdTickHeatSeeking, 0, func(span trace.Span, ev *Event) error {
			r := b.engine.TickHeatSeeking()
			ev.Tick = i
			ev.Retarget = &r
			ev.TargetID = r.To
			span.SetAttributes(
				attribute.Int("tick", i),
				attribute.Bool("moved", r.Moved),
				attribute.Bool("deactivated", r.Deactivated),
			)
			return nil
		})
	}
}

func (b *Battle) realityReset(ctx context.Context) {
	id := b.cfg.LockTarget
	b.exec(ctx, CmdActivateResetLock, id, func(span trace.Span, ev *Event) error {
		return b.engine.ActivateResetLock(id)
	})
	b.pause()
	b.exec(ctx, CmdTriggerReset, id, func(span trace.Span, ev *Event) error {
		r, err := b.engine.TriggerReset()
		if err != nil {
			return err
		}
		ev.Reset = &r
		span.SetAttributes(
			attribute.Int64("reset_count", int64(r.Count)),
			attribute.Int("reset_targets", len(r.ResetTargets)),
		)
		return nil
	})
}

func (b *Battle) finish(ctx context.Context) {
	b.status(ctx)
}

func (b *Battle) status(ctx context.Context) {
	b.exec(ctx, CmdStatus, 0, func(span trace.Span, ev *Event) error {
		s := b.engine.Status()
		ev.Status = &s
		span.SetAttributes(
			attribute.Int("active_effects", s.ActiveEffects),
			attribute.Int("alive_targets", s.AliveTargets),
		)
		return nil
	})
}

// exec runs one engine command inside its own span and records the event.
func (b *Battle) exec(ctx context.Context, cmd Command, id stand.TargetID, fn func(trace.Span, *Event) error) {
	tracer := telemetry.Tracer("stand")
	_, span := tracer.Start(ctx, "stand."+string(cmd))
	defer span.End()
	span.SetAttributes(
		attribute.String("phase", b.phase.String()),
		attribute.Int64("target", int64(id)),
	)

	ev := Event{Command: cmd, TargetID: id}
	if err := fn(span, &ev); err != nil {
		ev.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.logger.Warn("stand command failed",
			zap.String("command", string(cmd)),
			zap.Uint32("target", uint32(id)),
			zap.Error(err),
		)
	}
	b.record(ev)
}

func (b *Battle) record(ev Event) {
	ev.Phase = b.phase
	b.events = append(b.events, ev)
	if b.observe != nil {
		b.observe(ev)
	}
}

func (b *Battle) pause() {
	if b.cfg.Pause > 0 {
		time.Sleep(b.cfg.Pause)
	}
}
