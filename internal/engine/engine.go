package engine

import "github.com/ayusman/girya/internal/pose"

// Engine converts a per-frame stream of raw pose frames into classified
// repetitions. It owns all classification state and is driven by exactly
// one caller, one frame at a time; no method blocks or spawns goroutines.
type Engine struct {
	cfg         Config
	frameHeight float64

	smoother   *Smoother
	calibrator *Calibrator
	locker     *SideLocker
	velocity   *VelocityEstimator
	fsm        *repFSM
}

// Output is the per-frame result of Process.
type Output struct {
	// Calibrated reports whether warm-up has completed.
	Calibrated bool

	// Side is the locked working side; only meaningful when SideLocked.
	Side       pose.Side
	SideLocked bool

	// Phase is the repetition state machine's phase after this frame.
	Phase Phase

	// Velocity is the smoothed vertical wrist velocity in m/s (negative
	// is upward), for live display.
	Velocity float64

	// Speed is this frame's unsmoothed speed magnitude in m/s; zero on
	// frames that produced no velocity sample.
	Speed float64

	// Rep is the repetition that concluded this frame, if any.
	Rep *Rep
}

// New creates an Engine for a stream with the given frame height in
// pixels. The frame height is assumed constant for the stream's life.
func New(cfg Config, frameHeight float64) *Engine {
	return &Engine{
		cfg:         cfg,
		frameHeight: frameHeight,
		smoother:    NewSmoother(cfg.PositionAlpha),
		calibrator:  NewCalibrator(cfg, frameHeight),
		locker:      NewSideLocker(cfg.SideLockDelta),
		fsm:         newRepFSM(cfg),
	}
}

// Process consumes one frame's raw keypoints and monotonic timestamp in
// milliseconds. A nil frame (no person detected), an incomplete frame, an
// implausible frame interval, an unresolved side or incomplete warm-up
// all degrade to "no output this frame"; Process never fails.
func (e *Engine) Process(raw *pose.Frame, timestampMs int64) Output {
	out := Output{Phase: e.fsm.phase}
	if e.velocity != nil {
		out.Velocity = e.velocity.SmoothedVY()
	}

	if raw == nil {
		return out
	}

	smoothed := e.smoother.Smooth(raw)

	cal := e.calibrator.Done()
	if cal == nil {
		e.calibrator.Observe(smoothed)
		if cal = e.calibrator.Done(); cal == nil {
			return out
		}
	}
	out.Calibrated = true

	side, locked := e.locker.Observe(smoothed)
	if !locked {
		return out
	}
	out.Side = side
	out.SideLocked = true

	if !smoothed.HasAll(side, pose.Wrist, pose.Hip, pose.Shoulder, pose.Nose) {
		return out
	}

	if e.velocity == nil {
		e.velocity = NewVelocityEstimator(e.cfg, cal.Scale, e.frameHeight)
	}

	sample, ok := e.velocity.Update(smoothed.At(side, pose.Wrist), timestampMs)
	out.Velocity = e.velocity.SmoothedVY()
	if !ok {
		return out
	}
	out.Speed = sample.Speed

	out.Rep = e.fsm.step(observation{
		wristY:    smoothed.At(side, pose.Wrist).Y,
		hipY:      smoothed.At(side, pose.Hip).Y,
		shoulderY: smoothed.At(side, pose.Shoulder).Y,
		noseY:     smoothed.At(side, pose.Nose).Y,
		vy:        e.velocity.SmoothedVY(),
	})
	out.Phase = e.fsm.phase

	return out
}

// Calibration returns the calibration result, or nil during warm-up.
func (e *Engine) Calibration() *Calibration {
	return e.calibrator.Done()
}

// Reset discards all smoothing, calibration, side and phase state,
// returning the engine to the pre-warm-up condition.
func (e *Engine) Reset() {
	e.smoother.Reset()
	e.calibrator.Reset()
	e.locker.Reset()
	e.velocity = nil
	e.fsm.reset()
}
