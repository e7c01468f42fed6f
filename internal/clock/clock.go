// Package clock drives the simulation loop: one tick per simulated
// minute, paced by a wall-clock interval and a speed multiplier.
package clock

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 1440
	DaysPerSeason  = 90
)

// Runner paces the simulation. Speed 0 pauses; higher values compress
// wall time per simulated minute.
type Runner struct {
	Minute   int64
	Speed    float64
	Interval time.Duration

	OnMinute func(minute int64)
	OnDay    func(minute int64)

	running atomic.Bool
}

// NewRunner creates a runner at one real second per simulated minute.
func NewRunner() *Runner {
	return &Runner{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run blocks, ticking until Stop is called.
func (r *Runner) Run() {
	r.running.Store(true)
	slog.Info("clock started", "minute", r.Minute, "speed", r.Speed)

	for r.running.Load() {
		if r.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		r.step()

		elapsed := time.Since(start)
		target := time.Duration(float64(r.Interval) / r.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("clock stopped", "minute", r.Minute)
}

// Stop halts the loop after the current tick. Safe to call from
// another goroutine.
func (r *Runner) Stop() {
	r.running.Store(false)
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	return r.running.Load()
}

func (r *Runner) step() {
	r.Minute++

	if r.OnMinute != nil {
		r.OnMinute(r.Minute)
	}
	if r.Minute%MinutesPerDay == 0 && r.OnDay != nil {
		r.OnDay(r.Minute)
	}
}

// SimTime renders an absolute minute as calendar time.
func SimTime(minute int64) string {
	mins := minute % MinutesPerHour
	totalHours := minute / MinutesPerHour
	hours := totalHours % 24
	totalDays := totalHours / 24
	day := totalDays%DaysPerSeason + 1
	seasons := totalDays / DaysPerSeason
	year := seasons/4 + 1

	seasonNames := [4]string{"Spring", "Summer", "Autumn", "Winter"}

	return fmt.Sprintf("%s Day %d, %d:%02d Year %d",
		seasonNames[seasons%4], day, hours, mins, year)
}
