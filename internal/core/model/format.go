package model

import (
	"fmt"
	"time"
)

// FormatCountdown renders whole remaining seconds as zero-padded MM:SS.
func FormatCountdown(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
