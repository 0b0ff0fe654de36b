package session

import (
	"context"
	"testing"

	"sliderbridge/config"
)

func TestNewWithNoProducersBuildsEmptySession(t *testing.T) {
	cfg := config.Default()

	sess, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(sess.workers) != 0 {
		t.Fatalf("workers = %d, want 0 for an all-none config", len(sess.workers))
	}
	sess.Stop()
}

func TestNewRejectsUnknownDeviceMode(t *testing.T) {
	cfg := config.Default()
	cfg.DeviceMode = "not-a-real-device"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected an error for an unknown deviceMode")
	}
}

func TestNewRejectsUnknownOutputMode(t *testing.T) {
	cfg := config.Default()
	cfg.OutputMode = "not-a-real-output"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected an error for an unknown outputMode")
	}
}

func TestNewRejectsUnknownLEDMode(t *testing.T) {
	cfg := config.Default()
	cfg.LEDMode = "not-a-real-led-mode"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected an error for an unknown ledMode")
	}
}

func TestNewBuildsBrokenithmServer(t *testing.T) {
	cfg := config.Default()
	cfg.DeviceMode = "brokenithm"

	sess, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(sess.workers) != 1 {
		t.Fatalf("workers = %d, want 1", len(sess.workers))
	}
	sess.Stop()
}
