package jitter

import (
	"testing"
	"time"
)

func TestExponentialBackoffBounds(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{3, 8 * time.Second},
		{5, 30 * time.Second},
		{100, 30 * time.Second},
	}

	for _, c := range cases {
		for i := 0; i < 50; i++ {
			got := ExponentialBackoff(time.Second, 30*time.Second, c.attempt, DefaultJitter)
			if got < c.want || got >= c.want+c.want/2 {
				t.Fatalf("attempt %d: %s not in [%s, %s)", c.attempt, got, c.want, c.want+c.want/2)
			}
		}
	}
}

func TestDurationWithoutFactor(t *testing.T) {
	if got := Duration(time.Second, 0); got != time.Second {
		t.Fatalf("got %s", got)
	}
	if got := Duration(0, DefaultJitter); got != 0 {
		t.Fatalf("got %s", got)
	}
}

func TestBackoffResets(t *testing.T) {
	b := &Backoff{Base: 10 * time.Millisecond, Max: time.Second}

	if d := b.Next(); d != 10*time.Millisecond {
		t.Fatalf("first delay %s", d)
	}
	if d := b.Next(); d != 20*time.Millisecond {
		t.Fatalf("second delay %s", d)
	}
	if b.Attempt() != 2 {
		t.Fatalf("attempt %d", b.Attempt())
	}

	b.Reset()
	if d := b.Next(); d != 10*time.Millisecond {
		t.Fatalf("after reset %s", d)
	}
}
