// Package main provides a CSV exporter for Girya sessions.
// It reads a session payload from stdin and writes one CSV file per session.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Request represents the session payload from the export executor.
type Request struct {
	SessionID string `json:"session_id"`
	Notes     string `json:"notes"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
	Reps      []Rep  `json:"reps"`
}

// Rep is one classified repetition in the payload.
type Rep struct {
	Movement     string  `json:"movement"`
	PeakVelocity float64 `json:"peak_velocity"`
	RecordedAt   string  `json:"recorded_at"`
}

// Response represents the output to the export executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Path    string `json:"path,omitempty"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	path, err := writeCSV(&req)
	if err != nil {
		writeErrorResponse(fmt.Sprintf("failed to write csv: %v", err))
		return
	}

	json.NewEncoder(os.Stdout).Encode(Response{Success: true, Path: path})
}

// writeCSV writes the session's reps to <session-id>.csv in the working
// directory and returns the absolute path.
func writeCSV(req *Request) (string, error) {
	path, err := filepath.Abs(req.SessionID + ".csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"movement", "peak_velocity_mps", "recorded_at"}); err != nil {
		return "", err
	}

	for _, rep := range req.Reps {
		record := []string{
			rep.Movement,
			strconv.FormatFloat(rep.PeakVelocity, 'f', 3, 64),
			rep.RecordedAt,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return path, nil
}

func writeErrorResponse(msg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: msg})
}
