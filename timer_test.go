package cubesim

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00.00"},
		{1234 * time.Millisecond, "00:01.23"},
		{59*time.Second + 999*time.Millisecond, "00:59.99"},
		{61*time.Second + 50*time.Millisecond, "01:01.05"},
		{-time.Second, "00:00.00"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSolveTimer_StartsOnFirstMove(t *testing.T) {
	now := t0
	timer := NewSolveTimer(func() time.Time { return now })
	timer.Initialize()

	if timer.IsRunning() || timer.HasStarted() {
		t.Fatal("initialized timer should be idle")
	}

	timer.RecordMove()
	now = now.Add(2 * time.Second)
	timer.RecordMove()

	if timer.MoveCount() != 2 {
		t.Errorf("MoveCount = %d, want 2", timer.MoveCount())
	}
	if got := timer.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", got)
	}

	timer.Stop()
	now = now.Add(time.Minute)
	if got := timer.Format(); got != "00:02.00" {
		t.Errorf("Format after stop = %q, want 00:02.00", got)
	}

	// Moves after a stop are counted but do not restart the clock.
	timer.RecordMove()
	if timer.IsRunning() {
		t.Error("timer restarted after stop")
	}
}

func TestSolveTimer_PauseResume(t *testing.T) {
	now := t0
	timer := NewSolveTimer(func() time.Time { return now })

	timer.Start()
	now = now.Add(time.Second)
	timer.Pause()
	timer.Pause()
	now = now.Add(time.Hour)
	timer.Resume()
	timer.Resume()
	now = now.Add(500 * time.Millisecond)

	if got := timer.Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 1.5s", got)
	}

	timer.Reset()
	if timer.Elapsed() != 0 || timer.HasStarted() || timer.MoveCount() != 0 {
		t.Error("Reset should clear everything")
	}
}
