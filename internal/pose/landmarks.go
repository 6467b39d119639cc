// Package pose provides body pose detection interfaces and the keypoint
// model consumed by the classification engine.
package pose

// Side identifies a body side in a pose frame.
type Side int

const (
	Left Side = iota
	Right
	NumSides
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Joint identifies a tracked anatomical landmark. The joint set is closed:
// these are the only landmarks the engine ever reads.
type Joint int

const (
	Wrist Joint = iota
	Shoulder
	Hip
	Knee
	Nose
	Elbow
	NumJoints
)

// String returns the joint name.
func (j Joint) String() string {
	switch j {
	case Wrist:
		return "wrist"
	case Shoulder:
		return "shoulder"
	case Hip:
		return "hip"
	case Knee:
		return "knee"
	case Nose:
		return "nose"
	case Elbow:
		return "elbow"
	default:
		return "unknown"
	}
}

// Keypoint is a landmark position in normalized image coordinates:
// x and y in [0,1] with y growing downward, z is normalized depth.
type Keypoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame holds one video frame's detected keypoints, indexed by side and
// joint. Joints the detector failed to resolve are marked absent and must
// be checked with Has before use.
type Frame struct {
	Points  [NumSides][NumJoints]Keypoint `json:"points"`
	Present [NumSides][NumJoints]bool     `json:"present"`
	Score   float64                       `json:"score"`
}

// Set records a keypoint for the given side and joint.
func (f *Frame) Set(s Side, j Joint, k Keypoint) {
	f.Points[s][j] = k
	f.Present[s][j] = true
}

// Has reports whether the given joint was detected for the given side.
func (f *Frame) Has(s Side, j Joint) bool {
	return f.Present[s][j]
}

// At returns the keypoint for the given side and joint. The value is only
// meaningful when Has returns true.
func (f *Frame) At(s Side, j Joint) Keypoint {
	return f.Points[s][j]
}

// HasAll reports whether every listed joint is present for the given side.
func (f *Frame) HasAll(s Side, joints ...Joint) bool {
	for _, j := range joints {
		if !f.Present[s][j] {
			return false
		}
	}
	return true
}
