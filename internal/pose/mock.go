package pose

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	frame *Frame
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFrame sets the pose frame that will be returned by Detect.
// A nil frame simulates "no person visible".
func (m *MockDetector) SetFrame(frame *Frame) {
	m.frame = frame
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured frame or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.frame, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// symmetricFrame builds a frame with identical joint heights on both sides,
// fanned slightly apart horizontally.
func symmetricFrame(noseY, shoulderY, elbowY, wristY, hipY, kneeY float64) *Frame {
	f := &Frame{Score: 0.95}

	xs := [NumSides]float64{Left: 0.42, Right: 0.58}
	for side := Side(0); side < NumSides; side++ {
		x := xs[side]
		f.Set(side, Nose, Keypoint{X: 0.5, Y: noseY})
		f.Set(side, Shoulder, Keypoint{X: x, Y: shoulderY})
		f.Set(side, Elbow, Keypoint{X: x, Y: elbowY})
		f.Set(side, Wrist, Keypoint{X: x, Y: wristY})
		f.Set(side, Hip, Keypoint{X: x, Y: hipY})
		f.Set(side, Knee, Keypoint{X: x, Y: kneeY})
	}

	return f
}

// StandingFrame returns a preset Frame for an upright neutral stance with
// arms hanging beside the hips.
func StandingFrame() *Frame {
	return symmetricFrame(0.20, 0.35, 0.48, 0.62, 0.60, 0.78)
}

// HingeFrame returns a preset Frame for a bent-over hinge position: torso
// folded toward the hips, wrists hanging well below hip level.
func HingeFrame() *Frame {
	return symmetricFrame(0.45, 0.54, 0.62, 0.72, 0.58, 0.76)
}

// RackFrame returns a preset Frame with the wrists held at shoulder height,
// as at the top of a clean.
func RackFrame() *Frame {
	return symmetricFrame(0.20, 0.35, 0.42, 0.36, 0.60, 0.78)
}

// OverheadFrame returns a preset Frame with the wrists locked out above the
// head, as at the top of a press or snatch.
func OverheadFrame() *Frame {
	return symmetricFrame(0.20, 0.35, 0.25, 0.10, 0.60, 0.78)
}
