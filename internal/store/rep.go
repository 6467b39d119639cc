package store

import (
	"database/sql"
	"time"
)

// Movement identifies the classified movement of a stored rep.
type Movement string

const (
	MovementClean  Movement = "clean"
	MovementPress  Movement = "press"
	MovementSnatch Movement = "snatch"
	MovementSwing  Movement = "swing"
)

// Rep represents one classified repetition stored in the database.
type Rep struct {
	ID           int64
	SessionID    string
	Movement     Movement
	PeakVelocity float64
	RecordedAt   time.Time
}

// MovementSummary aggregates a session's reps for one movement.
type MovementSummary struct {
	Movement     Movement
	Count        int
	PeakVelocity float64
}

// RepRepository provides operations on a session's rep list.
type RepRepository struct {
	db *sql.DB
}

// Reps returns the rep repository for this store.
func (s *Store) Reps() *RepRepository {
	return &RepRepository{db: s.db}
}

// Add appends a rep to its session's list.
func (r *RepRepository) Add(rep *Rep) error {
	rep.RecordedAt = time.Now()

	result, err := r.db.Exec(
		`INSERT INTO reps (session_id, movement, peak_velocity, recorded_at)
		 VALUES (?, ?, ?, ?)`,
		rep.SessionID, string(rep.Movement), rep.PeakVelocity, rep.RecordedAt,
	)
	if err != nil {
		return err
	}

	rep.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves a session's reps in recording order.
func (r *RepRepository) ListBySession(sessionID string) ([]*Rep, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, movement, peak_velocity, recorded_at
		 FROM reps WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reps []*Rep
	for rows.Next() {
		rep := &Rep{}
		var movement string

		err := rows.Scan(&rep.ID, &rep.SessionID, &movement, &rep.PeakVelocity, &rep.RecordedAt)
		if err != nil {
			return nil, err
		}

		rep.Movement = Movement(movement)
		reps = append(reps, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reps, nil
}

// SummaryBySession aggregates a session's reps into per-movement counts
// and peak velocities.
func (r *RepRepository) SummaryBySession(sessionID string) ([]MovementSummary, error) {
	rows, err := r.db.Query(
		`SELECT movement, COUNT(*), MAX(peak_velocity)
		 FROM reps WHERE session_id = ? GROUP BY movement ORDER BY movement`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []MovementSummary
	for rows.Next() {
		var s MovementSummary
		var movement string

		if err := rows.Scan(&movement, &s.Count, &s.PeakVelocity); err != nil {
			return nil, err
		}

		s.Movement = Movement(movement)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
