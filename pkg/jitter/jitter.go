// Package jitter считает задержки между повторами со случайной добавкой,
// чтобы реплики витрины не ломились в Kafka, Postgres и MinIO одновременно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — добавка до 50% от задержки.
const DefaultJitter = 0.5

// Duration возвращает d, увеличенную на случайную долю в пределах [0, factor).
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// ExponentialBackoff — base*2^attempt, но не больше max, плюс джиттер. attempt считается с нуля.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	return Duration(capped(base, max, attempt), factor)
}

func capped(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		if d >= max/2 {
			return max
		}
		d *= 2
	}
	if d > max {
		return max
	}
	return d
}

// Backoff помнит номер попытки между вызовами. Не потокобезопасен.
type Backoff struct {
	Base   time.Duration
	Max    time.Duration
	Factor float64

	attempt int
}

func NewBackoff(base, max time.Duration) *Backoff {
	return &Backoff{Base: base, Max: max, Factor: DefaultJitter}
}

// Next возвращает задержку перед очередным повтором и увеличивает счётчик.
func (b *Backoff) Next() time.Duration {
	d := ExponentialBackoff(b.Base, b.Max, b.attempt, b.Factor)
	b.attempt++
	return d
}

// Attempt — сколько раз уже вызывался Next после последнего Reset.
func (b *Backoff) Attempt() int {
	return b.attempt
}

func (b *Backoff) Reset() {
	b.attempt = 0
}
