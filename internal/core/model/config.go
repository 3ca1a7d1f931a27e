package model

import "time"

const (
	MinWorkMinutes = 1
	MaxWorkMinutes = 180

	MinRestSeconds = 5
	MaxRestSeconds = 300

	MinReminderInterval = 1
	MaxReminderInterval = 20
)

// CycleConfig contains the work/rest schedule and reminder escalation intervals.
type CycleConfig struct {
	WorkDuration  time.Duration
	RestDuration  time.Duration
	WaterInterval uint32
	WalkInterval  uint32
}

// DefaultCycleConfig returns the out-of-the-box schedule: 20 minutes of work, 20 seconds of rest,
// a water reminder every second rest and a walk reminder every third.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		WorkDuration:  20 * time.Minute,
		RestDuration:  20 * time.Second,
		WaterInterval: 2,
		WalkInterval:  3,
	}
}

// WorkMinutes returns the work duration in whole minutes.
func (config CycleConfig) WorkMinutes() int {
	return int(config.WorkDuration / time.Minute)
}

// RestSeconds returns the rest duration in whole seconds.
func (config CycleConfig) RestSeconds() int {
	return int(config.RestDuration / time.Second)
}

// Normalize clamps every field into its valid range.
func (config CycleConfig) Normalize() CycleConfig {
	minutes := ClampWorkMinutes(int((config.WorkDuration + time.Minute - 1) / time.Minute))
	seconds := ClampRestSeconds(int((config.RestDuration + time.Second - 1) / time.Second))
	return CycleConfig{
		WorkDuration:  time.Duration(minutes) * time.Minute,
		RestDuration:  time.Duration(seconds) * time.Second,
		WaterInterval: uint32(ClampReminderInterval(int(config.WaterInterval))),
		WalkInterval:  uint32(ClampReminderInterval(int(config.WalkInterval))),
	}
}

// ClampWorkMinutes limits a work interval to 1..180 minutes.
func ClampWorkMinutes(minutes int) int {
	return clamp(minutes, MinWorkMinutes, MaxWorkMinutes)
}

// ClampRestSeconds limits a rest interval to 5..300 seconds.
func ClampRestSeconds(seconds int) int {
	return clamp(seconds, MinRestSeconds, MaxRestSeconds)
}

// ClampReminderInterval limits a water or walk interval to 1..20 rests.
func ClampReminderInterval(interval int) int {
	return clamp(interval, MinReminderInterval, MaxReminderInterval)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
