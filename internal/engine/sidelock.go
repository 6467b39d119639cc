package engine

import "github.com/ayusman/girya/internal/pose"

// SideLocker decides which body side is performing the tracked movement
// and fixes that choice for the remainder of the session.
type SideLocker struct {
	delta  float64
	side   pose.Side
	locked bool
}

// NewSideLocker creates a SideLocker with the given wrist split threshold.
func NewSideLocker(delta float64) *SideLocker {
	return &SideLocker{delta: delta}
}

// Observe examines one frame's wrist heights. If the wrists are split by
// more than the threshold it locks onto the side whose wrist sits lower
// (the side holding the implement). Returns the locked side and whether a
// decision has been made; ambiguous frames make no decision.
func (l *SideLocker) Observe(f *pose.Frame) (pose.Side, bool) {
	if l.locked {
		return l.side, true
	}

	if !f.Has(pose.Left, pose.Wrist) || !f.Has(pose.Right, pose.Wrist) {
		return 0, false
	}

	leftY := f.At(pose.Left, pose.Wrist).Y
	rightY := f.At(pose.Right, pose.Wrist).Y

	diff := leftY - rightY
	if diff < 0 {
		diff = -diff
	}
	if diff <= l.delta {
		return 0, false
	}

	if leftY > rightY {
		l.side = pose.Left
	} else {
		l.side = pose.Right
	}
	l.locked = true
	return l.side, true
}

// Locked returns the locked side and whether a decision has been made.
func (l *SideLocker) Locked() (pose.Side, bool) {
	return l.side, l.locked
}

// Reset discards the side decision.
func (l *SideLocker) Reset() {
	l.side = 0
	l.locked = false
}
