package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// FrameDrawer is the one call the harness times: render a frame and block
// until the GPU finished it.
type FrameDrawer interface {
	DrawFrame() (time.Duration, error)
}

// Config collects the knobs that were compile-time constants in earlier
// experiments; callers pass it explicitly instead of mutating package state.
type Config struct {
	Duration time.Duration // measurement window, wall clock
	Cooldown time.Duration // idle hold after the window, before teardown
	Quiet    bool          // suppress the per-frame console lines
}

func DefaultConfig() Config {
	return Config{Duration: 600 * time.Second, Cooldown: time.Second}
}

// Result summarizes one measurement run.
type Result struct {
	RunID  string
	Frames int
	Total  time.Duration // sum of per-frame durations
	Min    time.Duration
	Max    time.Duration
	Wall   time.Duration
}

func (r *Result) Average() time.Duration {
	if r.Frames == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Frames)
}

// Run drives the synchronous frame loop until the wall-clock budget elapses.
// The budget is checked after each frame's sync point, so no frame is cut
// short; the final frame is always allowed to finish. One cooldown frame is
// drawn after the window so the last presented image is complete.
func Run(d FrameDrawer, cfg Config, w io.Writer) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	start := time.Now()
	deadline := start.Add(cfg.Duration)

	for {
		dur, err := d.DrawFrame()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", res.Frames, err)
		}
		res.Frames++
		res.Total += dur
		if res.Min == 0 || dur < res.Min {
			res.Min = dur
		}
		if dur > res.Max {
			res.Max = dur
		}
		if !cfg.Quiet {
			fmt.Fprintf(w, "frame %6d: %10v  (total %v)\n", res.Frames, dur, res.Total.Round(time.Millisecond))
		}
		if !time.Now().Before(deadline) {
			break
		}
	}

	// Cooldown: present one more frame, then hold briefly before teardown.
	if cfg.Cooldown > 0 {
		if _, err := d.DrawFrame(); err != nil {
			return nil, fmt.Errorf("cooldown frame: %w", err)
		}
		time.Sleep(cfg.Cooldown)
	}

	res.Wall = time.Since(start)
	fmt.Fprintf(w, "run %s: %d frames in %v wall, avg %v/frame (min %v, max %v), gpu total %v\n",
		res.RunID, res.Frames, res.Wall.Round(time.Millisecond), res.Average(),
		res.Min, res.Max, res.Total.Round(time.Millisecond))
	return res, nil
}
