// Package export provides discovery and execution of external session
// exporters. An exporter is a standalone executable that receives a
// session's rep list as JSON on stdin and writes it out in some format
// (CSV, TCX, a spreadsheet upload) on its own.
package export

// Manifest describes an exporter's metadata.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Formats     []string `json:"formats"`
}

// Rep is one classified repetition in an export request.
type Rep struct {
	Movement     string  `json:"movement"`
	PeakVelocity float64 `json:"peak_velocity"`
	RecordedAt   string  `json:"recorded_at"`
}

// Request is the session payload sent to an exporter on stdin.
type Request struct {
	SessionID string `json:"session_id"`
	Notes     string `json:"notes,omitempty"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
	Reps      []Rep  `json:"reps"`
}

// Response is the exporter's reply on stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Exporter represents a discovered exporter with its manifest and location.
type Exporter struct {
	Manifest   Manifest
	Path       string
	Executable string
}
