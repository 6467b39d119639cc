package engine

import (
	"math"
	"testing"

	"github.com/ayusman/girya/internal/pose"
)

func TestCalibrator_DerivesScaleFromTorso(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupFrames = 5

	// Standing frame: torso span 0.25 of a 480px frame is 120px, which at
	// an assumed 0.5m torso gives 240 px/m.
	c := NewCalibrator(cfg, 480)

	for i := 0; i < cfg.WarmupFrames; i++ {
		if !c.Observe(pose.StandingFrame()) {
			t.Fatalf("frame %d: expected complete frame to be consumed", i)
		}
	}

	cal := c.Done()
	if cal == nil {
		t.Fatal("expected calibration to complete after warm-up frames")
	}

	if math.Abs(cal.MaxTorsoSpan-0.25) > 1e-9 {
		t.Errorf("expected max torso span 0.25, got %f", cal.MaxTorsoSpan)
	}
	wantScale := 0.25 * 480 / cfg.AssumedTorsoMeters
	if math.Abs(cal.Scale-wantScale) > 1e-9 {
		t.Errorf("expected scale %f, got %f", wantScale, cal.Scale)
	}
	// Standing wrists hang 0.02 below the hips on both sides.
	if math.Abs(cal.NeutralWristOffset-0.02) > 1e-9 {
		t.Errorf("expected neutral wrist offset 0.02, got %f", cal.NeutralWristOffset)
	}
}

func TestCalibrator_ClampsScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupFrames = 3

	// A tiny frame height produces a torso of a few pixels; the derived
	// scale must be clamped rather than let velocities blow up.
	c := NewCalibrator(cfg, 80)

	for i := 0; i < cfg.WarmupFrames; i++ {
		c.Observe(pose.StandingFrame())
	}

	cal := c.Done()
	if cal == nil {
		t.Fatal("expected calibration to complete")
	}
	if cal.Scale != cfg.MinScale {
		t.Errorf("expected scale clamped to %f, got %f", cfg.MinScale, cal.Scale)
	}
}

func TestCalibrator_SkipsIncompleteFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupFrames = 3
	c := NewCalibrator(cfg, 480)

	// A frame missing one side's hip must not consume a warm-up slot.
	partial := pose.StandingFrame()
	partial.Present[pose.Right][pose.Hip] = false
	if c.Observe(partial) {
		t.Error("expected incomplete frame to be rejected")
	}
	if c.FramesCaptured() != 0 {
		t.Errorf("expected 0 frames captured, got %d", c.FramesCaptured())
	}

	for i := 0; i < cfg.WarmupFrames; i++ {
		c.Observe(pose.StandingFrame())
	}
	if c.Done() == nil {
		t.Error("expected calibration to complete from valid frames only")
	}
}

func TestCalibrator_KeepsMaxTorsoAcrossFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupFrames = 2
	c := NewCalibrator(cfg, 480)

	// A hinged frame has a compressed torso span; the upright frame's
	// larger span must win.
	c.Observe(pose.HingeFrame())
	c.Observe(pose.StandingFrame())

	cal := c.Done()
	if cal == nil {
		t.Fatal("expected calibration to complete")
	}
	if math.Abs(cal.MaxTorsoSpan-0.25) > 1e-9 {
		t.Errorf("expected upright torso span 0.25 to win, got %f", cal.MaxTorsoSpan)
	}
}

func TestCalibrator_Reset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupFrames = 2
	c := NewCalibrator(cfg, 480)

	c.Observe(pose.StandingFrame())
	c.Observe(pose.StandingFrame())
	if c.Done() == nil {
		t.Fatal("expected calibration to complete")
	}

	c.Reset()
	if c.Done() != nil {
		t.Error("expected no calibration after reset")
	}
	if c.FramesCaptured() != 0 {
		t.Errorf("expected 0 frames captured after reset, got %d", c.FramesCaptured())
	}
}
