package core

import (
	"strconv"
	"time"
)

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of a single tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Wait blocks until the next tick is due.
func (f *FixedStep) Wait() {
	for !f.ShouldStep() {
		time.Sleep(f.step / 8)
	}
}

// FrameTimer records the wall-clock span between Start and Stop. Each Stop
// overwrites the previous reading.
type FrameTimer struct {
	start   time.Time
	running bool
	elapsed time.Duration
}

// Start marks the beginning of a measured span.
func (t *FrameTimer) Start() {
	t.start = time.Now()
	t.running = true
}

// Stop records the time since the matching Start. Without a running span it
// leaves the last reading untouched.
func (t *FrameTimer) Stop() {
	if !t.running {
		return
	}
	t.elapsed = time.Since(t.start)
	t.running = false
}

// Running reports whether Start has been called without a matching Stop.
func (t *FrameTimer) Running() bool { return t.running }

// Elapsed returns the last recorded span.
func (t *FrameTimer) Elapsed() time.Duration { return t.elapsed }

// Milliseconds returns the last recorded span in fractional milliseconds.
func (t *FrameTimer) Milliseconds() float64 {
	return float64(t.elapsed) / float64(time.Millisecond)
}

// String formats the last reading in milliseconds with two decimals.
func (t *FrameTimer) String() string {
	return FormatMillis(t.elapsed)
}

// FormatMillis renders d as milliseconds with two decimals.
func FormatMillis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 2, 64)
}

// TimerStats accumulates timer readings across ticks.
type TimerStats struct {
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Add records one reading.
func (s *TimerStats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Count++
	s.Total += d
}

// Mean returns the average reading, or zero before the first Add.
func (s TimerStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// String renders "mean/min/max" in milliseconds.
func (s TimerStats) String() string {
	return FormatMillis(s.Mean()) + "/" + FormatMillis(s.Min) + "/" + FormatMillis(s.Max) + " ms"
}
