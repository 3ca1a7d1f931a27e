package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{input: 0, want: "00:00"},
		{input: -5 * time.Second, want: "00:00"},
		{input: 999 * time.Millisecond, want: "00:00"},
		{input: 20 * time.Second, want: "00:20"},
		{input: 59*time.Second + 900*time.Millisecond, want: "00:59"},
		{input: 20 * time.Minute, want: "20:00"},
		{input: 180 * time.Minute, want: "180:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCountdown(tt.input), "input %s", tt.input)
	}
}
