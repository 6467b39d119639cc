// Package tray provides a system tray interface for the Girya velocity
// tracker: session start/stop, the last classified rep and a rep counter.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onSession   func(recording bool)
	onDashboard func()
	onQuit      func()
	recording   bool
	mu          sync.RWMutex

	// Menu items stored for later updates
	menuSession *systray.MenuItem
	menuLastRep *systray.MenuItem
	menuCount   *systray.MenuItem
}

// New creates a new Tray instance. No session is recording by default.
func New() *Tray {
	return &Tray{}
}

// OnSession sets the callback invoked when recording is started or stopped.
func (t *Tray) OnSession(fn func(recording bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSession = fn
}

// OnDashboard sets the callback invoked when the dashboard item is clicked.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback invoked when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Girya")
	systray.SetTooltip("Girya Velocity Tracker")

	t.menuSession = systray.AddMenuItem("▶ Start Session", "Start or stop a recording session")
	systray.AddSeparator()

	t.menuLastRep = systray.AddMenuItem("Last rep: none", "Last classified repetition")
	t.menuLastRep.Disable()
	t.menuCount = systray.AddMenuItem("Reps: 0", "Reps this session")
	t.menuCount.Disable()
	systray.AddSeparator()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the dashboard in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Girya")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuSession.ClickedCh:
				t.handleSession()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleSession toggles recording and updates the menu text.
func (t *Tray) handleSession() {
	t.mu.Lock()
	t.recording = !t.recording
	recording := t.recording

	if recording {
		t.menuSession.SetTitle("■ Stop Session")
	} else {
		t.menuSession.SetTitle("▶ Start Session")
	}

	callback := t.onSession
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(recording)
	}
}

// handleDashboard handles the dashboard menu item click.
func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastRep updates the last-rep display in the menu.
func (t *Tray) SetLastRep(movement string, peakVelocity float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastRep != nil {
		if movement == "" {
			t.menuLastRep.SetTitle("Last rep: none")
		} else {
			t.menuLastRep.SetTitle(fmt.Sprintf("Last rep: %s (%.2f m/s)", movement, peakVelocity))
		}
	}
}

// SetRepCount updates the session rep counter in the menu.
func (t *Tray) SetRepCount(count int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuCount != nil {
		t.menuCount.SetTitle(fmt.Sprintf("Reps: %d", count))
	}
}

// IsRecording returns whether a session is currently recording.
func (t *Tray) IsRecording() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recording
}
