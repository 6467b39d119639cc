// Package engine implements the motion classification core: landmark
// smoothing, pixel-to-meter calibration, frame-rate-normalized velocity
// estimation and the repetition state machine that segments the velocity
// signal into classified reps.
package engine

// Config holds the tunable thresholds for the classification engine.
// Distances are in normalized image units unless noted, velocities in m/s.
type Config struct {
	// PositionAlpha is the EMA factor applied to raw landmark coordinates.
	PositionAlpha float64

	// VelocityAlpha is the EMA factor applied to the vertical velocity.
	VelocityAlpha float64

	// WarmupFrames is the number of valid frames calibration observes
	// before deriving the pixel-to-meter scale.
	WarmupFrames int

	// AssumedTorsoMeters is the assumed real-world shoulder-to-hip length
	// used to derive the scale factor.
	AssumedTorsoMeters float64

	// MinScale is the lower clamp for the scale factor, in pixels per meter.
	MinScale float64

	// SideLockDelta is the minimum wrist height split between the two sides
	// before the working side is locked.
	SideLockDelta float64

	// MinFrameIntervalMs and MaxFrameIntervalMs bound the plausible frame
	// interval; deltas outside the window yield no velocity sample.
	MinFrameIntervalMs float64
	MaxFrameIntervalMs float64

	// ReferenceIntervalMs is the assumed reference frame interval that
	// velocity magnitudes are normalized to.
	ReferenceIntervalMs float64

	// PullVelocityTrigger is the upward speed that starts a rep, and the
	// speed that re-arms detection after a lockout.
	PullVelocityTrigger float64

	// LockoutVelocityCutoff is the speed below which the wrist counts as
	// nearly stopped, ending the pull.
	LockoutVelocityCutoff float64

	// HingeDepth is how far the wrist must dip below the hip before the
	// hinge flag is set.
	HingeDepth float64

	// ShoulderZone is the wrist-to-shoulder band that counts as racked.
	ShoulderZone float64

	// OverheadMargin is how far above the nose the wrist must be to count
	// as overhead.
	OverheadMargin float64

	// HingedTorsoSpan is the shoulder-to-hip span below which the torso
	// counts as folded.
	HingedTorsoSpan float64

	// CleanHoldFrames is the consecutive-frame dwell at the shoulder that
	// finalizes a clean.
	CleanHoldFrames int
}

// DefaultConfig returns a Config with the default thresholds.
func DefaultConfig() Config {
	return Config{
		PositionAlpha:         0.3,
		VelocityAlpha:         0.15,
		WarmupFrames:          30,
		AssumedTorsoMeters:    0.5,
		MinScale:              50,
		SideLockDelta:         0.1,
		MinFrameIntervalMs:    16,
		MaxFrameIntervalMs:    100,
		ReferenceIntervalMs:   1000.0 / 30.0,
		PullVelocityTrigger:   0.4,
		LockoutVelocityCutoff: 0.6,
		HingeDepth:            0.05,
		ShoulderZone:          0.12,
		OverheadMargin:        0.05,
		HingedTorsoSpan:       0.08,
		CleanHoldFrames:       30,
	}
}
