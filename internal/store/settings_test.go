package store

import (
	"errors"
	"testing"
)

func TestSettingsRepository_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set("camera_id", "1"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	value, err := repo.Get("camera_id")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if value != "1" {
		t.Errorf("expected value %q, got %q", "1", value)
	}
}

func TestSettingsRepository_SetOverwrites(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	repo.Set("camera_id", "0")
	if err := repo.Set("camera_id", "2"); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}

	value, err := repo.Get("camera_id")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if value != "2" {
		t.Errorf("expected overwritten value %q, got %q", "2", value)
	}
}

func TestSettingsRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Settings().Get("no-such-key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
