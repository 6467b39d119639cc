package engine

import "github.com/ayusman/girya/internal/pose"

// Calibration is the immutable result of the warm-up phase.
type Calibration struct {
	// Scale converts pixel distances to meters, in pixels per meter.
	Scale float64

	// NeutralWristOffset is the mean wrist-below-hip offset observed in
	// the neutral stance, in normalized units.
	NeutralWristOffset float64

	// MaxTorsoSpan is the largest shoulder-to-hip span observed during
	// warm-up, in normalized units.
	MaxTorsoSpan float64
}

// Calibrator derives a pixel-to-meter scale factor and a neutral-posture
// baseline by observing body proportions over an initial warm-up window.
type Calibrator struct {
	cfg         Config
	frameHeight float64

	frames    int
	offsetSum float64
	maxTorso  float64
	result    *Calibration
}

// NewCalibrator creates a Calibrator for a stream with the given frame
// height in pixels.
func NewCalibrator(cfg Config, frameHeight float64) *Calibrator {
	return &Calibrator{cfg: cfg, frameHeight: frameHeight}
}

// Observe feeds one smoothed frame into the warm-up accumulator. Frames
// missing a required joint on either side are skipped and do not consume
// a warm-up slot. Returns true if the frame was consumed.
func (c *Calibrator) Observe(f *pose.Frame) bool {
	if c.result != nil {
		return false
	}

	for side := pose.Side(0); side < pose.NumSides; side++ {
		if !f.HasAll(side, pose.Wrist, pose.Hip, pose.Shoulder) {
			return false
		}
	}

	var offset, torso float64
	for side := pose.Side(0); side < pose.NumSides; side++ {
		wrist := f.At(side, pose.Wrist)
		hip := f.At(side, pose.Hip)
		shoulder := f.At(side, pose.Shoulder)

		offset += (wrist.Y - hip.Y) / float64(pose.NumSides)

		span := shoulder.Y - hip.Y
		if span < 0 {
			span = -span
		}
		if span > torso {
			torso = span
		}
	}

	c.offsetSum += offset
	if torso > c.maxTorso {
		c.maxTorso = torso
	}
	c.frames++

	if c.frames >= c.cfg.WarmupFrames {
		c.finish()
	}
	return true
}

// finish collapses the accumulated observations into the scale factor.
func (c *Calibrator) finish() {
	torsoPixels := c.maxTorso * c.frameHeight
	scale := torsoPixels / c.cfg.AssumedTorsoMeters
	if scale < c.cfg.MinScale {
		scale = c.cfg.MinScale
	}

	c.result = &Calibration{
		Scale:              scale,
		NeutralWristOffset: c.offsetSum / float64(c.frames),
		MaxTorsoSpan:       c.maxTorso,
	}
}

// Done returns the calibration result, or nil while warm-up is still in
// progress.
func (c *Calibrator) Done() *Calibration {
	return c.result
}

// FramesCaptured returns how many warm-up frames have been consumed.
func (c *Calibrator) FramesCaptured() int {
	return c.frames
}

// Reset returns the calibrator to the pre-warm-up state.
func (c *Calibrator) Reset() {
	c.frames = 0
	c.offsetSum = 0
	c.maxTorso = 0
	c.result = nil
}
