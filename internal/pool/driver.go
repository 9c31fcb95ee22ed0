package pool

import (
	"fmt"
	"time"

	"dropbench/internal/core"
	"dropbench/internal/dispatch"
)

// Driver runs the per-frame cycle for a pool: render the completed tick,
// dispatch the next one, join it. It is meant to be used from one goroutine.
// Every method that reads or writes grid state first joins any tick still in
// flight, so output is never observed mid-update.
type Driver struct {
	pool     *Pool
	disp     dispatch.Dispatcher
	timer    core.FrameTimer
	inflight dispatch.Handle
	enabled  bool
	closed   bool
	ticks    int
}

// NewDriver binds a pool to a dispatcher. Ticks are enabled by default.
func NewDriver(p *Pool, d dispatch.Dispatcher) *Driver {
	return &Driver{pool: p, disp: d, enabled: true}
}

// Pool returns the driven pool.
func (d *Driver) Pool() *Pool { return d.pool }

// Strategy names the dispatcher.
func (d *Driver) Strategy() string { return d.disp.Name() }

// Enabled reports whether Begin dispatches work.
func (d *Driver) Enabled() bool { return d.enabled }

// SetEnabled gates whether ticks advance the grids.
func (d *Driver) SetEnabled(on bool) { d.enabled = on }

// Ticks returns how many ticks have been dispatched and joined.
func (d *Driver) Ticks() int { return d.ticks }

// Elapsed returns the duration of the last Begin/End span.
func (d *Driver) Elapsed() time.Duration { return d.timer.Elapsed() }

// Timer exposes the frame timer.
func (d *Driver) Timer() *core.FrameTimer { return &d.timer }

// Label renders the timer text shown next to the toggle.
func (d *Driver) Label() string {
	return fmt.Sprintf("%s = %s ms", d.disp.Name(), d.timer.String())
}

// Render joins any in-flight tick and hands every grid's output to fn.
func (d *Driver) Render(fn func(index int, pixels []byte)) {
	d.join()
	d.pool.Render(fn)
}

// Begin starts the timer and, when enabled, dispatches one tick. A tick that
// is still in flight from an earlier Begin is completed first.
func (d *Driver) Begin() {
	if d.inflight != nil {
		d.End()
	}
	d.timer.Start()
	if d.enabled && !d.closed {
		d.inflight = d.pool.Dispatch(d.disp)
	}
}

// End joins the tick started by Begin and records the elapsed time.
func (d *Driver) End() {
	d.join()
	d.timer.Stop()
}

// Tick runs Begin and End back to back.
func (d *Driver) Tick() {
	d.Begin()
	d.End()
}

// Perturb joins any in-flight tick and drops a value into grid index.
func (d *Driver) Perturb(index, x, y int) bool {
	d.join()
	return d.pool.Perturb(index, x, y)
}

// Reset joins any in-flight tick and reseeds every grid. Zero keeps the
// current master seed.
func (d *Driver) Reset(seed int64) {
	d.join()
	d.pool.Reset(seed)
}

func (d *Driver) join() {
	if d.inflight == nil {
		return
	}
	d.inflight.Wait()
	d.inflight = nil
	d.ticks++
}

// Parameters reports the pool configuration plus the driver state.
func (d *Driver) Parameters() core.ParameterSnapshot {
	snap := d.pool.Parameters()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Dispatch",
		Params: []core.Parameter{
			core.TextParam("strategy", "Strategy", d.disp.Name()),
			core.BoolParam("enabled", "Enabled", d.enabled),
			core.IntParam("ticks", "Ticks", d.ticks),
			core.TextParam("elapsed", "Tick ms", d.timer.String()),
		},
	})
	return snap
}

// ParameterControls lists the values the HUD may change.
func (d *Driver) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "enabled", Label: "Enabled", Type: core.ParamTypeBool},
		{Key: "dampening", Label: "Dampening", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.5, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetBoolParameter toggles the enable flag.
func (d *Driver) SetBoolParameter(key string, value bool) bool {
	if key != "enabled" {
		return false
	}
	d.SetEnabled(value)
	return true
}

// SetFloatParameter joins any in-flight tick and forwards to the pool.
func (d *Driver) SetFloatParameter(key string, value float64) bool {
	d.join()
	return d.pool.SetFloatParameter(key, value)
}

// Close joins outstanding work, stops the dispatcher and releases the pool.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.join()
	d.timer.Stop()
	d.closed = true
	d.disp.Close()
	d.pool.Close()
}
