package engine

import "github.com/ayusman/girya/internal/pose"

// Smoother applies an exponential moving average to raw landmark
// coordinates, independently per side, joint and coordinate, to damp
// detector jitter.
type Smoother struct {
	alpha float64
	state pose.Frame
}

// NewSmoother creates a Smoother with the given blending factor.
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Smooth blends the raw frame into the held smoothing state and returns
// the updated smoothed frame. A joint with no prior value is seeded from
// the raw observation verbatim; joints absent in the raw frame are held
// from the previous state.
func (s *Smoother) Smooth(raw *pose.Frame) *pose.Frame {
	s.state.Score = raw.Score

	for side := pose.Side(0); side < pose.NumSides; side++ {
		for joint := pose.Joint(0); joint < pose.NumJoints; joint++ {
			if !raw.Has(side, joint) {
				continue
			}

			k := raw.At(side, joint)
			if !s.state.Has(side, joint) {
				s.state.Set(side, joint, k)
				continue
			}

			prev := s.state.At(side, joint)
			s.state.Set(side, joint, pose.Keypoint{
				X: s.alpha*k.X + (1-s.alpha)*prev.X,
				Y: s.alpha*k.Y + (1-s.alpha)*prev.Y,
				Z: s.alpha*k.Z + (1-s.alpha)*prev.Z,
			})
		}
	}

	return &s.state
}

// Reset discards the held smoothing state.
func (s *Smoother) Reset() {
	s.state = pose.Frame{}
}
