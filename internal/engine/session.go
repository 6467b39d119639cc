package engine

// Aggregator accumulates classified repetitions into per-movement counts
// and peak-velocity records for one session.
type Aggregator struct {
	counts map[Movement]int
	peaks  map[Movement]float64
	total  int
	best   float64
}

// Summary is a snapshot of an aggregator's session totals.
type Summary struct {
	Total  int                  `json:"total"`
	Counts map[Movement]int     `json:"counts"`
	Peaks  map[Movement]float64 `json:"peaks"`
	Best   float64              `json:"best"`
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		counts: make(map[Movement]int),
		peaks:  make(map[Movement]float64),
	}
}

// Record folds one classified rep into the session totals.
func (a *Aggregator) Record(rep Rep) {
	a.counts[rep.Movement]++
	a.total++

	if rep.PeakVelocity > a.peaks[rep.Movement] {
		a.peaks[rep.Movement] = rep.PeakVelocity
	}
	if rep.PeakVelocity > a.best {
		a.best = rep.PeakVelocity
	}
}

// Count returns the number of reps recorded for the given movement.
func (a *Aggregator) Count(m Movement) int {
	return a.counts[m]
}

// Total returns the number of reps recorded across all movements.
func (a *Aggregator) Total() int {
	return a.total
}

// Peak returns the best peak velocity recorded for the given movement.
func (a *Aggregator) Peak(m Movement) float64 {
	return a.peaks[m]
}

// Best returns the best peak velocity recorded across all movements.
func (a *Aggregator) Best() float64 {
	return a.best
}

// Summary returns a copy of the current session totals.
func (a *Aggregator) Summary() Summary {
	s := Summary{
		Total:  a.total,
		Best:   a.best,
		Counts: make(map[Movement]int, len(a.counts)),
		Peaks:  make(map[Movement]float64, len(a.peaks)),
	}
	for m, c := range a.counts {
		s.Counts[m] = c
	}
	for m, p := range a.peaks {
		s.Peaks[m] = p
	}
	return s
}

// Reset clears all session totals.
func (a *Aggregator) Reset() {
	a.counts = make(map[Movement]int)
	a.peaks = make(map[Movement]float64)
	a.total = 0
	a.best = 0
}
