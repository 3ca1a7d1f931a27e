package reminder

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"eyeguard/internal/core/escalation"
)

// Entry is a headline with a message template; %d is replaced by the rest length in seconds.
type Entry struct {
	Headline string
	Template string
}

var eyeEntries = []Entry{
	{"👀 Eye break", "20-20-20: look at something 20 feet away for %d seconds"},
	{"🌳 Look far away", "Find the farthest point outside the window and relax your focus for %d seconds"},
	{"🏔️ Mountain view", "Imagine a summit view and let your eyes drift for %d seconds"},
	{"💡 Blink check", "People blink 15-20 times a minute, but only 3-4 times while staring at a screen. Rest %d seconds"},
	{"🧬 Tear film", "The cornea has no blood vessels and breathes through tears. Blink and rest %d seconds"},
	{"🦅 Eagle view", "Eagles spot a rabbit 3 km away because they look far. Rest %d seconds"},
	{"🎮 Checkpoint", "Even speedrunners pause. Your eyes get a %d second checkpoint"},
	{"☕ Developer law", "while (eyesTired) { break; } // rest %d seconds"},
	{"🎬 Cut!", "The director says cut. Your eyes are off set for %d seconds"},
	{"🧠 Recharge", "Rest your eyes and your brain together for %d seconds"},
	{"🎯 Refocus", "Pausing is how you aim better. Rest %d seconds and refocus"},
}

var waterEntries = []Entry{
	{"💧 Water time", "Get up and drink a glass of water (%d s)"},
	{"🚰 Refill", "Your body is 70%% water, keep it topped up (%d s)"},
	{"🧪 Focus fuel", "Losing 2%% of body water already hurts attention. Drink up (%d s)"},
	{"🔬 Sip often", "Small frequent sips beat one big gulp (%d s)"},
	{"😵 Tired?", "Maybe you are thirsty, not sleepy. Try a glass of water (%d s)"},
	{"🐫 Camel says", "I can skip water for a week. You cannot (%d s)"},
	{"💻 Water++", "Coffee++ is no substitute for Water++ (%d s)"},
}

var walkEntries = []Entry{
	{"🚶 Walk time", "Stand up and move around (%d s)"},
	{"🧘 Stretch", "Reach for the ceiling and stretch it out (%d s)"},
	{"🔬 Circulation", "Sitting slows your circulation. Walk for a bit (%d s)"},
	{"🦵 Legs calling", "Your legs miss walking (%d s)"},
	{"🦥 Sloth shock", "Even the sloth moved more than you today (%d s)"},
	{"🪑 Chair protest", "Your chair asked for a break too (%d s)"},
	{"🏃 Lap", "Walk a lap around the room or march in place (%d s)"},
}

// Picker draws random reminder messages from the static tables.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker creates a picker; a nil rng is seeded from the current time.
func NewPicker(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Picker{rng: rng}
}

// Compose returns the overlay headline and message for a rest of the given type.
// The eye message is always present; water and walk reminders are appended beneath it.
func (picker *Picker) Compose(restType escalation.RestType, rest time.Duration) (string, string) {
	seconds := int(rest / time.Second)
	headline, message := picker.pick(eyeEntries, seconds)

	var extra string
	var icon string
	switch restType {
	case escalation.Water:
		_, extra = picker.pick(waterEntries, seconds)
		icon = "💧"
	case escalation.Walk:
		_, extra = picker.pick(walkEntries, seconds)
		icon = "🚶"
	default:
		return headline, message
	}

	var builder strings.Builder
	builder.WriteString(message)
	builder.WriteString("\n\n")
	builder.WriteString(icon)
	builder.WriteString(" Also: ")
	builder.WriteString(extra)
	return headline, builder.String()
}

func (picker *Picker) pick(entries []Entry, seconds int) (string, string) {
	picker.mu.Lock()
	entry := entries[picker.rng.Intn(len(entries))]
	picker.mu.Unlock()
	return entry.Headline, fmt.Sprintf(entry.Template, seconds)
}
