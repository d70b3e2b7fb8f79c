// Package shake turns a stream of accelerometer samples into discrete
// shake events.
package shake

import (
	"math"
	"sync"
	"time"
)

// Defaults for Detector tuning.
const (
	DefaultThreshold = 200.0
	DefaultMinHits   = 6

	sampleInterval = 150 * time.Millisecond
	slopTime       = 800 * time.Millisecond
)

// Detector counts high-speed movements between samples and fires onShake
// once MinHits of them land close enough together. Samples arriving
// within 150ms of the previous accepted one are dropped.
type Detector struct {
	mu        sync.Mutex
	threshold float64
	minHits   int
	onShake   func()

	started   bool
	lastAt    time.Time
	lastX     float64
	lastY     float64
	lastZ     float64
	hits      int
	lastHitAt time.Time
}

// Option configures a Detector.
type Option func(*Detector)

// WithThreshold sets the speed above which a sample counts as a hit.
func WithThreshold(v float64) Option {
	return func(d *Detector) {
		if v > 0 {
			d.threshold = v
		}
	}
}

// WithMinHits sets how many hits make a shake.
func WithMinHits(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.minHits = n
		}
	}
}

// New creates a Detector that calls onShake for every detected shake.
func New(onShake func(), opts ...Option) *Detector {
	d := &Detector{
		threshold: DefaultThreshold,
		minHits:   DefaultMinHits,
		onShake:   onShake,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Sample feeds one accelerometer reading taken at the given time. It
// reports whether the reading completed a shake.
func (d *Detector) Sample(x, y, z float64, at time.Time) bool {
	d.mu.Lock()

	if !d.started {
		d.started = true
		d.lastAt = at
		d.lastX, d.lastY, d.lastZ = x, y, z
		d.mu.Unlock()
		return false
	}

	elapsed := at.Sub(d.lastAt)
	if elapsed <= sampleInterval {
		d.mu.Unlock()
		return false
	}

	dx, dy, dz := x-d.lastX, y-d.lastY, z-d.lastZ
	speed := math.Sqrt(dx*dx+dy*dy+dz*dz) / float64(elapsed.Milliseconds()) * 10000

	d.lastAt = at
	d.lastX, d.lastY, d.lastZ = x, y, z

	if at.Sub(d.lastHitAt) > slopTime {
		d.hits = 0
	}

	fired := false
	if speed > d.threshold {
		d.hits++
		d.lastHitAt = at
		if d.hits >= d.minHits {
			d.hits = 0
			fired = true
		}
	}
	d.mu.Unlock()

	if fired && d.onShake != nil {
		d.onShake()
	}
	return fired
}

// Reset forgets all sample history.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
	d.hits = 0
	d.lastAt = time.Time{}
	d.lastHitAt = time.Time{}
}
