package core

import "testing"

type manualClock struct{ ms int64 }

func (c *manualClock) Millis() int64 { return c.ms }

func TestIntervalPrimesThenFiresOncePerPeriod(t *testing.T) {
	clock := &manualClock{ms: 40}
	iv := NewInterval(clock, 250)

	if iv.Due() {
		t.Fatalf("first poll should not fire")
	}
	clock.ms = 289
	if iv.Due() {
		t.Fatalf("fired before a full period")
	}
	clock.ms = 290
	if !iv.Due() {
		t.Fatalf("expected tick after one period")
	}
	if iv.Due() {
		t.Fatalf("fired twice for the same instant")
	}
}

func TestIntervalDoesNotCatchUp(t *testing.T) {
	clock := &manualClock{}
	iv := NewInterval(clock, 100)
	iv.Due()

	clock.ms = 1000
	fired := 0
	for i := 0; i < 5; i++ {
		if iv.Due() {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("late frame produced %d ticks, want 1", fired)
	}
}

func TestIntervalSetPeriod(t *testing.T) {
	clock := &manualClock{}
	iv := NewInterval(clock, 0)
	if iv.Period() != 1 {
		t.Fatalf("non-positive period should become 1, got %d", iv.Period())
	}
	iv.SetPeriod(50)
	iv.Due()
	clock.ms = 50
	if !iv.Due() {
		t.Fatalf("expected tick with the new period")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 32; i++ {
		if a.Float64() != b.Float64() || a.IntN(100) != b.IntN(100) {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
	if NewRNG(1).IntN(0) != 0 {
		t.Fatalf("IntN(0) should return 0")
	}
}
