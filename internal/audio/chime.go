package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"eyeguard/internal/core/timekeeper"
)

const (
	sampleRate = 44100
	// bytes per mono float32 sample
	sampleBytes = 4
)

// Note is one tone of the chime.
type Note struct {
	Frequency float64
	Duration  time.Duration
}

// RestChime is the two-note cue played when a rest begins.
var RestChime = []Note{
	{Frequency: 880, Duration: 180 * time.Millisecond},
	{Frequency: 660, Duration: 320 * time.Millisecond},
}

// Chime plays a short cue on rest start. The oto context is opened lazily on
// first use because a process may only create one.
type Chime struct {
	logger  *zap.Logger
	enabled atomic.Bool
	volume  float64

	mu      sync.Mutex
	context *oto.Context
	failed  bool
	pcm     []byte
}

// NewChime creates a chime. volume is clamped to [0,1].
func NewChime(enabled bool, volume float64, logger *zap.Logger) *Chime {
	if logger == nil {
		logger = zap.NewNop()
	}
	chime := &Chime{
		logger: logger,
		volume: math.Max(0, math.Min(1, volume)),
	}
	chime.enabled.Store(enabled)
	return chime
}

// SetEnabled toggles playback.
func (chime *Chime) SetEnabled(enabled bool) {
	chime.enabled.Store(enabled)
}

// Enabled reports whether playback is on.
func (chime *Chime) Enabled() bool {
	return chime.enabled.Load()
}

// Run plays the chime for every rest start received on events until ctx is
// done or the channel closes.
func (chime *Chime) Run(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == timekeeper.EventRestStart && chime.Enabled() {
				if err := chime.Play(); err != nil {
					chime.logger.Warn("chime failed", zap.Error(err))
				}
			}
		}
	}
}

// Play starts the chime and returns without waiting for it to finish.
func (chime *Chime) Play() error {
	audioContext, pcm, err := chime.ensureContext()
	if err != nil {
		return err
	}

	player := audioContext.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(20 * time.Millisecond)
		}
		_ = player.Close()
	}()
	return nil
}

func (chime *Chime) ensureContext() (*oto.Context, []byte, error) {
	chime.mu.Lock()
	defer chime.mu.Unlock()

	if chime.context != nil {
		return chime.context, chime.pcm, nil
	}
	if chime.failed {
		return nil, nil, fmt.Errorf("audio output unavailable")
	}

	options := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	audioContext, ready, err := oto.NewContext(options)
	if err != nil {
		chime.failed = true
		return nil, nil, fmt.Errorf("open audio context: %w", err)
	}
	<-ready

	chime.context = audioContext
	chime.pcm = Render(RestChime, sampleRate, chime.volume)
	return chime.context, chime.pcm, nil
}

// Render synthesizes notes as mono little-endian float32 PCM. Each note has a
// short linear attack and an exponential decay so it does not click.
func Render(notes []Note, rate int, volume float64) []byte {
	total := 0
	for _, note := range notes {
		total += samplesFor(note.Duration, rate)
	}

	buffer := make([]byte, 0, total*sampleBytes)
	attack := rate / 200
	for _, note := range notes {
		count := samplesFor(note.Duration, rate)
		for index := 0; index < count; index++ {
			envelope := math.Exp(-4 * float64(index) / float64(count))
			if index < attack {
				envelope *= float64(index) / float64(attack)
			}
			phase := 2 * math.Pi * note.Frequency * float64(index) / float64(rate)
			sample := float32(volume * envelope * math.Sin(phase))
			buffer = binary.LittleEndian.AppendUint32(buffer, math.Float32bits(sample))
		}
	}
	return buffer
}

func samplesFor(duration time.Duration, rate int) int {
	if duration <= 0 {
		return 0
	}
	return int(duration.Seconds() * float64(rate))
}
