package app

import (
	"log"
	"time"

	"github.com/ayusman/girya/internal/engine"
	"github.com/ayusman/girya/internal/store"
)

// runPipeline is the main tracking loop that processes frames from the
// camera. It manages the transitions between idle and active modes based
// on motion detection, so pose estimation only runs at full rate while
// someone is moving in front of the camera.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run pose detection on the frame
// 4. Feed the pose frame and timestamp to the classification engine
// 5. Persist and broadcast any rep that concluded this frame
// 6. After 2s no motion, switch back to idle mode
func (a *App) runPipeline() {
	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip pose estimation if not in active mode or no detector
			if !activeMode || a.detector == nil {
				frame.Close()
				continue
			}

			// Step 2: Pose detection
			poseFrame, err := a.detector.Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			// Step 3: Classification. A nil pose frame still goes
			// through: the engine treats it as "no update" without
			// disturbing its state.
			timestampMs := time.Now().UnixMilli()
			out := a.engine.Process(poseFrame, timestampMs)

			if out.Rep != nil {
				a.handleRep(out.Rep)
			}

			a.notify(Update{
				TimestampMs: timestampMs,
				Calibrated:  out.Calibrated,
				Phase:       out.Phase.String(),
				Velocity:    out.Velocity,
				Rep:         out.Rep,
				Summary:     a.Summary(),
			})
		}
	}
}

// handleRep records a classified rep in the session aggregator and
// persists it under the current session.
func (a *App) handleRep(rep *engine.Rep) {
	a.mu.Lock()
	a.session.Record(*rep)
	sessionID := a.sessionID
	a.mu.Unlock()

	log.Printf("Rep classified: %s at %.2f m/s", rep.Movement, rep.PeakVelocity)

	if a.config.Store == nil || sessionID == "" {
		return
	}

	err := a.config.Store.Reps().Add(&store.Rep{
		SessionID:    sessionID,
		Movement:     store.Movement(rep.Movement),
		PeakVelocity: rep.PeakVelocity,
	})
	if err != nil {
		log.Printf("Failed to persist rep: %v", err)
	}
}

// notify pushes a frame update to the registered listener, if any.
func (a *App) notify(u Update) {
	a.mu.RLock()
	fn := a.onUpdate
	a.mu.RUnlock()

	if fn != nil {
		fn(u)
	}
}
