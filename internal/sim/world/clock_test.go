package world

import (
	"math"
	"testing"
)

func TestClock_AdvancesAndWraps(t *testing.T) {
	w := newTestWorld(t, testConfig())
	if w.Hour() != 8 || w.Minutes() != 0 {
		t.Fatalf("start %d:%02d", w.Hour(), w.Minutes())
	}
	// 100 world seconds per real second: 36s real is one hour.
	w.advanceClock(36_000)
	if w.Hour() != 9 {
		t.Fatalf("hour=%d want 9", w.Hour())
	}
	w.DebugSetWorldTime(23*secondsPerHour + 59*60)
	w.advanceClock(1200)
	if w.Hour() != 0 || w.Minutes() != 1 {
		t.Fatalf("wrap got %d:%02d", w.Hour(), w.Minutes())
	}
}

func TestClock_SkyAndSun(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.DebugSetWorldTime(12 * secondsPerHour)
	if w.SunAngle() != 0 {
		t.Fatalf("noon sun=%v", w.SunAngle())
	}
	if w.SkyColor() != nonPhotoBlue {
		t.Fatalf("noon sky=%s", w.SkyColor())
	}
	w.DebugSetWorldTime(0)
	if math.Abs(w.SunAngle()-math.Pi) > 1e-9 {
		t.Fatalf("midnight sun=%v", w.SunAngle())
	}
	if w.SkyColor() != darkPurple {
		t.Fatalf("midnight sky=%s", w.SkyColor())
	}
}
