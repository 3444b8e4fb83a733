package ledger

import (
	"testing"
	"time"
)

func TestIsLocked(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"just created", 0, false},
		{"one hour", time.Hour, false},
		{"one second before boundary", 24*time.Hour - time.Second, false},
		{"exactly 24h", 24 * time.Hour, true},
		{"one second after boundary", 24*time.Hour + time.Second, true},
		{"days later", 72 * time.Hour, true},
	}

	for _, tc := range cases {
		if got := IsLocked(base, base.Add(tc.elapsed)); got != tc.want {
			t.Errorf("%s: IsLocked = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsLockedZeroCreatedAt(t *testing.T) {
	// records without a creation time fail closed
	if !IsLocked(time.Time{}, time.Now()) {
		t.Fatal("zero createdAt should be locked")
	}
}

func TestIsLockedFutureCreatedAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if IsLocked(now.Add(time.Hour), now) {
		t.Fatal("future createdAt should not be locked; window has not elapsed")
	}
}

func TestLockRemaining(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"fresh", 0, 24 * time.Hour},
		{"halfway", 12 * time.Hour, 12 * time.Hour},
		{"locked", 25 * time.Hour, 0},
		{"boundary", 24 * time.Hour, 0},
	}

	for _, tc := range cases {
		if got := LockRemaining(base, base.Add(tc.elapsed)); got != tc.want {
			t.Errorf("%s: LockRemaining = %v; want %v", tc.name, got, tc.want)
		}
	}

	// clock skew: future createdAt is capped at a full window
	if got := LockRemaining(base.Add(time.Hour), base); got != 24*time.Hour {
		t.Errorf("future createdAt: LockRemaining = %v; want %v", got, 24*time.Hour)
	}
}
