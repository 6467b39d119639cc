package engine

import "math"

// Movement classifies a completed repetition.
type Movement string

const (
	MovementClean  Movement = "clean"
	MovementPress  Movement = "press"
	MovementSnatch Movement = "snatch"
	MovementSwing  Movement = "swing"
)

// Movements lists every movement the engine can classify.
var Movements = []Movement{MovementClean, MovementPress, MovementSnatch, MovementSwing}

// Rep is one classified repetition.
type Rep struct {
	Movement     Movement `json:"movement"`
	PeakVelocity float64  `json:"peak_velocity"`
}

// Phase is the repetition state machine's phase.
type Phase int

const (
	// PhaseIdle means no rep is in progress.
	PhaseIdle Phase = iota
	// PhasePulling means a rep is in progress and peak velocity and
	// positional flags are being tracked.
	PhasePulling
	// PhaseLocked means a rep has just concluded; the machine is inert
	// until velocity re-arms it.
	PhaseLocked
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePulling:
		return "pulling"
	case PhaseLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// observation is one valid frame's input to the state machine: the locked
// side's smoothed joint heights plus the smoothed vertical velocity.
type observation struct {
	wristY    float64
	hipY      float64
	shoulderY float64
	noseY     float64
	vy        float64
}

// pullState is the payload carried only while the machine is pulling.
// Keeping it behind a pointer prevents a stale peak from leaking into
// idle or locked phases.
type pullState struct {
	peak       float64
	hipCrossed bool
	holdFrames int
}

// repFSM segments the continuous velocity signal into discrete
// repetitions and classifies each from the accumulated positional flags
// and the posture at the moment the pull stops.
type repFSM struct {
	cfg          Config
	phase        Phase
	pull         *pullState
	visitedHinge bool
}

func newRepFSM(cfg Config) *repFSM {
	return &repFSM{cfg: cfg}
}

// step advances the machine by one valid frame and returns a classified
// rep if one concluded this frame. At most one rep is emitted per
// pulling→locked transition.
func (m *repFSM) step(o observation) *Rep {
	speed := math.Abs(o.vy)

	// The hinge flag is sticky across phases: it records that the wrist
	// dipped below the hip at some point, and is cleared only when the
	// machine re-arms after a lockout.
	if o.wristY > o.hipY+m.cfg.HingeDepth {
		m.visitedHinge = true
	}

	switch m.phase {
	case PhaseIdle:
		// Upward motion past the trigger starts a rep. Image y grows
		// downward, so upward velocity is negative.
		if o.vy < -m.cfg.PullVelocityTrigger {
			m.phase = PhasePulling
			m.pull = &pullState{peak: speed}
		}

	case PhasePulling:
		if speed > m.pull.peak {
			m.pull.peak = speed
		}
		if o.wristY < o.hipY {
			m.pull.hipCrossed = true
		}

		atShoulder := math.Abs(o.wristY-o.shoulderY) <= m.cfg.ShoulderZone
		overhead := o.wristY < o.noseY-m.cfg.OverheadMargin
		hinged := math.Abs(o.shoulderY-o.hipY) < m.cfg.HingedTorsoSpan
		stopped := speed < m.cfg.LockoutVelocityCutoff

		// Clean hold: a near-stationary wrist racked at the shoulder.
		// The dwell counter must run uninterrupted to finalize.
		if stopped && atShoulder && !hinged && !overhead {
			m.pull.holdFrames++
			if m.pull.holdFrames >= m.cfg.CleanHoldFrames {
				return m.lockout(MovementClean, m.fullRep())
			}
			return nil
		}
		m.pull.holdFrames = 0

		if stopped {
			if overhead {
				if m.fullRep() {
					return m.lockout(MovementSnatch, true)
				}
				return m.lockout(MovementPress, true)
			}
			if m.fullRep() {
				return m.lockout(MovementSwing, true)
			}
			// No hinge visit and no hip crossing: treat as noise and
			// drop the rep silently.
			return m.lockout("", false)
		}

	case PhaseLocked:
		if speed > m.cfg.PullVelocityTrigger {
			m.phase = PhaseIdle
			m.visitedHinge = false
		}
	}

	return nil
}

// fullRep reports whether the current pull traversed the hinge and
// crossed the hip, the signature of a complete ballistic rep.
func (m *repFSM) fullRep() bool {
	return m.visitedHinge && m.pull.hipCrossed
}

// lockout concludes the pull, transitioning to the locked phase, and
// emits the classified rep when emit is true.
func (m *repFSM) lockout(mv Movement, emit bool) *Rep {
	peak := m.pull.peak
	m.phase = PhaseLocked
	m.pull = nil

	if !emit {
		return nil
	}
	return &Rep{Movement: mv, PeakVelocity: peak}
}

// reset returns the machine to idle with all flags cleared.
func (m *repFSM) reset() {
	m.phase = PhaseIdle
	m.pull = nil
	m.visitedHinge = false
}
