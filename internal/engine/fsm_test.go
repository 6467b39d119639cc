package engine

import (
	"math"
	"testing"
)

// Observation builders mirroring the canonical positions of a lift: the
// y values match the pose package's preset frames.

func standingObs(vy float64) observation {
	return observation{wristY: 0.62, hipY: 0.60, shoulderY: 0.35, noseY: 0.20, vy: vy}
}

func hingeObs(vy float64) observation {
	return observation{wristY: 0.72, hipY: 0.58, shoulderY: 0.54, noseY: 0.45, vy: vy}
}

func rackObs(vy float64) observation {
	return observation{wristY: 0.36, hipY: 0.60, shoulderY: 0.35, noseY: 0.20, vy: vy}
}

func overheadObs(vy float64) observation {
	return observation{wristY: 0.10, hipY: 0.60, shoulderY: 0.35, noseY: 0.20, vy: vy}
}

// swingTopObs is the float position of a swing: wrist around chest
// height, outside the shoulder zone, below the nose.
func swingTopObs(vy float64) observation {
	return observation{wristY: 0.50, hipY: 0.60, shoulderY: 0.35, noseY: 0.20, vy: vy}
}

func stepN(t *testing.T, m *repFSM, o observation, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if rep := m.step(o); rep != nil {
			t.Fatalf("unexpected rep %+v on repeated step %d", rep, i)
		}
	}
}

func TestRepFSM_CleanAfterShoulderHold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CleanHoldFrames = 5
	m := newRepFSM(cfg)

	// Fast pull out of the hinge starts the rep.
	if rep := m.step(hingeObs(-0.8)); rep != nil {
		t.Fatalf("unexpected rep on pull start: %+v", rep)
	}
	if m.phase != PhasePulling {
		t.Fatalf("expected pulling phase, got %v", m.phase)
	}

	// Wrist travels past the hip to the rack at peak velocity.
	if rep := m.step(rackObs(-1.8)); rep != nil {
		t.Fatalf("unexpected rep mid-pull: %+v", rep)
	}

	// Near-stationary at the shoulder for one frame short of the dwell.
	stepN(t, m, rackObs(-0.1), cfg.CleanHoldFrames-1)

	rep := m.step(rackObs(-0.1))
	if rep == nil {
		t.Fatal("expected a rep once the shoulder dwell completed")
	}
	if rep.Movement != MovementClean {
		t.Errorf("expected clean, got %q", rep.Movement)
	}
	if math.Abs(rep.PeakVelocity-1.8) > 1e-9 {
		t.Errorf("expected peak velocity 1.8, got %f", rep.PeakVelocity)
	}
	if m.phase != PhaseLocked {
		t.Errorf("expected locked phase after the rep, got %v", m.phase)
	}
}

func TestRepFSM_BrokenHoldRestartsDwell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CleanHoldFrames = 5
	m := newRepFSM(cfg)

	m.step(hingeObs(-0.8))
	m.step(rackObs(-1.5))

	// Three frames of dwell, then the wrist speeds up again.
	stepN(t, m, rackObs(-0.1), 3)
	if rep := m.step(rackObs(-0.9)); rep != nil {
		t.Fatalf("unexpected rep while still moving: %+v", rep)
	}

	// The dwell counter restarted: 4 more still frames are not enough.
	stepN(t, m, rackObs(-0.1), cfg.CleanHoldFrames-1)

	if rep := m.step(rackObs(-0.1)); rep == nil {
		t.Fatal("expected a rep after a full uninterrupted dwell")
	}
}

func TestRepFSM_CleanHoldWithoutHingeEmitsNothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CleanHoldFrames = 3
	m := newRepFSM(cfg)

	// Pull starts from standing, never dipping into the hinge.
	m.step(standingObs(-0.8))
	m.step(rackObs(-1.2))

	stepN(t, m, rackObs(-0.1), cfg.CleanHoldFrames-1)

	// The dwell completes but the pull never visited the hinge, so the
	// machine locks out without a rep.
	if rep := m.step(rackObs(-0.1)); rep != nil {
		t.Errorf("expected no rep without a hinge visit, got %+v", rep)
	}
	if m.phase != PhaseLocked {
		t.Errorf("expected locked phase, got %v", m.phase)
	}
}

func TestRepFSM_SnatchLocksOutOverhead(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	m.step(hingeObs(-0.9))
	m.step(overheadObs(-2.4))

	rep := m.step(overheadObs(-0.3))
	if rep == nil {
		t.Fatal("expected a rep at the overhead lockout")
	}
	if rep.Movement != MovementSnatch {
		t.Errorf("expected snatch for a hinged overhead rep, got %q", rep.Movement)
	}
	if math.Abs(rep.PeakVelocity-2.4) > 1e-9 {
		t.Errorf("expected peak velocity 2.4, got %f", rep.PeakVelocity)
	}
}

func TestRepFSM_PressLocksOutOverheadWithoutHinge(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	// Pull straight from the rack: no hinge visit, so the overhead
	// lockout is a press, not a snatch.
	m.step(rackObs(-0.7))
	m.step(overheadObs(-1.1))

	rep := m.step(overheadObs(-0.2))
	if rep == nil {
		t.Fatal("expected a rep at the overhead lockout")
	}
	if rep.Movement != MovementPress {
		t.Errorf("expected press for an unhinged overhead rep, got %q", rep.Movement)
	}
}

func TestRepFSM_SwingStopsBelowShoulder(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	m.step(hingeObs(-0.8))
	m.step(swingTopObs(-1.4))

	rep := m.step(swingTopObs(-0.3))
	if rep == nil {
		t.Fatal("expected a rep at the swing float")
	}
	if rep.Movement != MovementSwing {
		t.Errorf("expected swing, got %q", rep.Movement)
	}
	if math.Abs(rep.PeakVelocity-1.4) > 1e-9 {
		t.Errorf("expected peak velocity 1.4, got %f", rep.PeakVelocity)
	}
}

func TestRepFSM_NoiseWithoutHingeDropsSilently(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	// A velocity spike from standing that stops mid-air with none of the
	// rep signatures: no hinge, no hip crossing, not overhead.
	m.step(standingObs(-0.9))
	if rep := m.step(standingObs(-0.2)); rep != nil {
		t.Errorf("expected the spurious pull to drop silently, got %+v", rep)
	}
	if m.phase != PhaseLocked {
		t.Errorf("expected locked phase after the drop, got %v", m.phase)
	}
}

func TestRepFSM_LockedIgnoresMotionUntilRearmed(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	m.step(hingeObs(-0.8))
	m.step(swingTopObs(-1.4))
	if rep := m.step(swingTopObs(-0.3)); rep == nil {
		t.Fatal("expected a swing rep")
	}

	// Slow drift while locked: no new rep, no phase change.
	stepN(t, m, swingTopObs(-0.2), 10)
	if m.phase != PhaseLocked {
		t.Fatalf("expected to stay locked, got %v", m.phase)
	}

	// Fast motion re-arms the machine.
	m.step(swingTopObs(0.9))
	if m.phase != PhaseIdle {
		t.Errorf("expected idle after re-arm, got %v", m.phase)
	}
}

func TestRepFSM_RearmClearsHingeFlag(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	// First rep: a full swing, hinge visited.
	m.step(hingeObs(-0.8))
	m.step(swingTopObs(-1.4))
	m.step(swingTopObs(-0.3))

	// Re-arm with the downswing.
	m.step(swingTopObs(0.9))

	// Second pull never revisits the hinge: it must classify as noise,
	// not inherit the previous rep's hinge flag.
	m.step(standingObs(-0.9))
	if rep := m.step(standingObs(-0.2)); rep != nil {
		t.Errorf("expected stale hinge flag to be cleared, got %+v", rep)
	}
}

func TestRepFSM_HingeFlagSetWhileIdle(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	// The lifter settles into the hinge slowly, below the pull trigger,
	// then explodes upward. The hinge visit predates the pull but still
	// counts toward the rep.
	stepN(t, m, hingeObs(-0.1), 5)
	m.step(standingObs(-0.9))
	m.step(swingTopObs(-1.2))

	rep := m.step(swingTopObs(-0.3))
	if rep == nil {
		t.Fatal("expected a rep")
	}
	if rep.Movement != MovementSwing {
		t.Errorf("expected swing from a pre-pull hinge, got %q", rep.Movement)
	}
}

func TestRepFSM_Reset(t *testing.T) {
	m := newRepFSM(DefaultConfig())

	m.step(hingeObs(-0.8))
	if m.phase != PhasePulling {
		t.Fatalf("expected pulling, got %v", m.phase)
	}

	m.reset()
	if m.phase != PhaseIdle {
		t.Errorf("expected idle after reset, got %v", m.phase)
	}
	if m.pull != nil {
		t.Error("expected pull state cleared after reset")
	}
	if m.visitedHinge {
		t.Error("expected hinge flag cleared after reset")
	}
}
