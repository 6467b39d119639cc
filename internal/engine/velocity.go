package engine

import (
	"math"

	"github.com/ayusman/girya/internal/pose"
)

// Sample is one frame's instantaneous wrist velocity in m/s, normalized
// to the reference frame rate so magnitudes are comparable regardless of
// the capture rate.
type Sample struct {
	VX    float64
	VY    float64
	Speed float64
}

// VelocityEstimator computes the tracked wrist's velocity from
// consecutive smoothed positions. It keeps its own previous-position
// state, separate from the landmark smoothing state.
type VelocityEstimator struct {
	cfg         Config
	scale       float64
	frameHeight float64

	hasPrev    bool
	prevX      float64
	prevY      float64
	prevT      int64
	smoothedVY float64
}

// NewVelocityEstimator creates an estimator using the calibrated
// pixel-to-meter scale and the stream's frame height in pixels.
func NewVelocityEstimator(cfg Config, scale, frameHeight float64) *VelocityEstimator {
	return &VelocityEstimator{cfg: cfg, scale: scale, frameHeight: frameHeight}
}

// Update feeds the current wrist position and frame timestamp (monotonic
// milliseconds). It returns the velocity sample and true when the elapsed
// interval is plausible. Duplicate frames (dt too small) and stalls (dt
// too large) produce no sample but still refresh the stored position so
// the next interval is measured from fresh data.
func (e *VelocityEstimator) Update(wrist pose.Keypoint, timestampMs int64) (Sample, bool) {
	if !e.hasPrev {
		e.store(wrist, timestampMs)
		return Sample{}, false
	}

	dt := float64(timestampMs - e.prevT)
	if dt < e.cfg.MinFrameIntervalMs || dt > e.cfg.MaxFrameIntervalMs {
		e.store(wrist, timestampMs)
		return Sample{}, false
	}

	// Pixel displacement → meters → m/s, then normalize by the ratio of
	// the reference interval to the same measured dt.
	norm := e.cfg.ReferenceIntervalMs / dt
	vx := (wrist.X - e.prevX) * e.frameHeight / e.scale / (dt / 1000) * norm
	vy := (wrist.Y - e.prevY) * e.frameHeight / e.scale / (dt / 1000) * norm

	e.store(wrist, timestampMs)
	e.smoothedVY = e.cfg.VelocityAlpha*vy + (1-e.cfg.VelocityAlpha)*e.smoothedVY

	return Sample{VX: vx, VY: vy, Speed: math.Hypot(vx, vy)}, true
}

func (e *VelocityEstimator) store(wrist pose.Keypoint, timestampMs int64) {
	e.prevX = wrist.X
	e.prevY = wrist.Y
	e.prevT = timestampMs
	e.hasPrev = true
}

// SmoothedVY returns the exponentially smoothed vertical velocity that
// drives the repetition state machine.
func (e *VelocityEstimator) SmoothedVY() float64 {
	return e.smoothedVY
}

// Reset discards the stored position and smoothed velocity.
func (e *VelocityEstimator) Reset() {
	e.hasPrev = false
	e.smoothedVY = 0
}
