package forecast

import "testing"

func TestThrottle_CrossingEarnNotHalved(t *testing.T) {
	th := Throttle{Cap: 12500}

	if got := th.Apply(12400); got != 12400 {
		t.Fatalf("first earn = %d, want 12400 (below cap)", got)
	}

	// This earn crosses the cap but the cap had not been met yet.
	if got := th.Apply(200); got != 200 {
		t.Fatalf("crossing earn = %d, want 200 (not halved)", got)
	}
	if th.Earned != 12600 {
		t.Fatalf("Earned = %d, want 12600", th.Earned)
	}

	// Now the cap is met: subsequent earns are floor-halved.
	if got := th.Apply(201); got != 100 {
		t.Fatalf("post-cap earn = %d, want 100 (floor of 201/2)", got)
	}
	if th.Earned != 12700 {
		t.Fatalf("Earned = %d, want 12700 (halved amount accumulates)", th.Earned)
	}
}

func TestThrottle_ExactCapActivates(t *testing.T) {
	th := Throttle{Cap: 12500, Earned: 12500}
	if !th.Active() {
		t.Fatal("Active = false at exactly the cap, want true")
	}
	if got := th.Apply(100); got != 50 {
		t.Fatalf("earn = %d, want 50", got)
	}
}

func TestThrottle_ZeroCapDisables(t *testing.T) {
	th := Throttle{Cap: 0, Earned: 1 << 40}
	if th.Active() {
		t.Fatal("Active = true with zero cap, want false")
	}
	if got := th.Apply(100); got != 100 {
		t.Fatalf("earn = %d, want 100", got)
	}
}

func TestThrottle_ResetMonth(t *testing.T) {
	th := Throttle{Cap: 100, Earned: 100}
	th.ResetMonth()
	if th.Active() {
		t.Fatal("Active = true after reset, want false")
	}
}
