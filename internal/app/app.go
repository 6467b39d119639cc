// Package app provides the main application logic for the Girya velocity
// tracker: it wires the camera, the pose detector, the classification
// engine and the store into a frame pipeline.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/girya/internal/capture"
	"github.com/ayusman/girya/internal/engine"
	"github.com/ayusman/girya/internal/export"
	"github.com/ayusman/girya/internal/pose"
	"github.com/ayusman/girya/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active tracking. At 15 FPS the
	// frame interval sits inside the engine's plausible dt window.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	ExporterDir  string
	CameraID     int
	MotionThresh float64
	Engine       engine.Config
}

// Update is the per-frame state pushed to live listeners.
type Update struct {
	TimestampMs int64          `json:"timestamp_ms"`
	Calibrated  bool           `json:"calibrated"`
	Phase       string         `json:"phase"`
	Velocity    float64        `json:"velocity"`
	Rep         *engine.Rep    `json:"rep,omitempty"`
	Summary     engine.Summary `json:"summary"`
}

// App is the main application that orchestrates pose tracking, rep
// classification and persistence.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   pose.Detector
	engine     *engine.Engine
	session    *engine.Aggregator
	exportMgr  *export.Manager
	exportExec *export.Executor

	enabled   bool
	sessionID string
	onUpdate  func(Update)
	mu        sync.RWMutex
	stopCh    chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	engineCfg := config.Engine
	if engineCfg == (engine.Config{}) {
		engineCfg = engine.DefaultConfig()
	}

	camera := capture.NewCamera(config.CameraID)

	a := &App{
		config:     config,
		camera:     camera,
		motion:     capture.NewMotionDetector(motionThreshold),
		engine:     engine.New(engineCfg, float64(camera.FrameHeight())),
		session:    engine.NewAggregator(),
		exportMgr:  export.NewManager(config.ExporterDir),
		exportExec: export.NewExecutor(5 * time.Second),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := pose.NewMediaPipeDetector(pose.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = pose.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables rep tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether rep tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d pose.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// OnUpdate registers the callback invoked with every processed frame's
// state. Only one listener is supported; a nil callback removes it.
func (a *App) OnUpdate(fn func(Update)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = fn
}

// StartSession begins a new recording session: the engine recalibrates
// from scratch and reps are persisted under a fresh session ID.
func (a *App) StartSession(notes string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sessionID != "" {
		return "", fmt.Errorf("session %s already in progress", a.sessionID)
	}

	id := uuid.New().String()
	if a.config.Store != nil {
		if err := a.config.Store.Sessions().Create(&store.Session{ID: id, Notes: notes}); err != nil {
			return "", err
		}
	}

	a.sessionID = id
	a.engine.Reset()
	a.session.Reset()
	a.enabled = true

	log.Printf("Session %s started", id)
	return id, nil
}

// EndSession closes the current recording session.
func (a *App) EndSession() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sessionID == "" {
		return fmt.Errorf("no session in progress")
	}

	if a.config.Store != nil {
		if err := a.config.Store.Sessions().Finish(a.sessionID); err != nil {
			return err
		}
	}

	log.Printf("Session %s ended: %d reps", a.sessionID, a.session.Total())
	a.sessionID = ""
	a.enabled = false
	return nil
}

// SessionID returns the in-progress session ID, or empty string.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// Summary returns the current session's aggregated totals.
func (a *App) Summary() engine.Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Summary()
}

// DiscoverExporters scans the exporter directory.
func (a *App) DiscoverExporters() error {
	return a.exportMgr.Discover()
}

// ExportSession runs the named exporter over a stored session's rep list.
func (a *App) ExportSession(sessionID, exporterName string) (*export.Response, error) {
	if a.config.Store == nil {
		return nil, fmt.Errorf("no store configured")
	}

	exporter, err := a.exportMgr.Get(exporterName)
	if err != nil {
		return nil, err
	}

	sess, err := a.config.Store.Sessions().GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	reps, err := a.config.Store.Reps().ListBySession(sessionID)
	if err != nil {
		return nil, err
	}

	req := &export.Request{
		SessionID: sess.ID,
		Notes:     sess.Notes,
		StartedAt: sess.StartedAt.Format(time.RFC3339),
		Reps:      make([]export.Rep, len(reps)),
	}
	if sess.EndedAt != nil {
		req.EndedAt = sess.EndedAt.Format(time.RFC3339)
	}
	for i, rep := range reps {
		req.Reps[i] = export.Rep{
			Movement:     string(rep.Movement),
			PeakVelocity: rep.PeakVelocity,
			RecordedAt:   rep.RecordedAt.Format(time.RFC3339),
		}
	}

	return a.exportExec.Execute(exporter, req)
}

// Start begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the tracking pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the pose detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the classification engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// ExporterManager returns the exporter manager.
func (a *App) ExporterManager() *export.Manager {
	return a.exportMgr
}

// Detector returns the pose detector.
func (a *App) Detector() pose.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
