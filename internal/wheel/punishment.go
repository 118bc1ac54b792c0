package wheel

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the kind of punishment handed to the winner.
type Mode int

const (
	Timeout Mode = iota
	Ban
)

func (m Mode) String() string {
	switch m {
	case Timeout:
		return "timeout"
	case Ban:
		return "ban"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Label is the display name.
func (m Mode) Label() string {
	switch m {
	case Timeout:
		return "Timeout"
	case Ban:
		return "BAN"
	}
	return m.String()
}

// ParseMode accepts "timeout" or "ban".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "timeout":
		return Timeout, nil
	case "ban":
		return Ban, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want timeout or ban)", s)
}

// DurationChoice is either DurationRandom or one of the fixed penalties.
type DurationChoice int

const (
	DurationRandom DurationChoice = iota
	OneMinute
	FiveMinutes
	TenMinutes
	OneHour
	OneDay
	OneWeek
)

// FixedDuration describes one selectable penalty length.
type FixedDuration struct {
	Choice DurationChoice
	Key    string // config/CLI value
	Label  string
	Length time.Duration
}

var fixedDurations = []FixedDuration{
	{OneMinute, "1m", "1 Minute", time.Minute},
	{FiveMinutes, "5m", "5 Minutes", 5 * time.Minute},
	{TenMinutes, "10m", "10 Minutes", 10 * time.Minute},
	{OneHour, "1h", "1 Hour", time.Hour},
	{OneDay, "1d", "1 Day", 24 * time.Hour},
	{OneWeek, "1w", "1 Week", 7 * 24 * time.Hour},
}

// FixedDurations returns the fixed penalties in ascending order.
func FixedDurations() []FixedDuration {
	out := make([]FixedDuration, len(fixedDurations))
	copy(out, fixedDurations)
	return out
}

// DurationChoices returns Random followed by every fixed penalty.
func DurationChoices() []DurationChoice {
	out := []DurationChoice{DurationRandom}
	for _, d := range fixedDurations {
		out = append(out, d.Choice)
	}
	return out
}

// Valid reports whether d is Random or a known fixed penalty.
func (d DurationChoice) Valid() bool {
	return d >= DurationRandom && d <= OneWeek
}

// Fixed returns the fixed penalty for d; false for Random or invalid values.
func (d DurationChoice) Fixed() (FixedDuration, bool) {
	for _, f := range fixedDurations {
		if f.Choice == d {
			return f, true
		}
	}
	return FixedDuration{}, false
}

func (d DurationChoice) String() string {
	if d == DurationRandom {
		return "random"
	}
	if f, ok := d.Fixed(); ok {
		return f.Key
	}
	return fmt.Sprintf("duration(%d)", int(d))
}

// Label is the display name.
func (d DurationChoice) Label() string {
	if d == DurationRandom {
		return "Random"
	}
	if f, ok := d.Fixed(); ok {
		return f.Label
	}
	return d.String()
}

// Next cycles through Random and the fixed penalties.
func (d DurationChoice) Next() DurationChoice {
	return DurationChoice((int(d) + 1) % (len(fixedDurations) + 1))
}

// ParseDuration accepts "random" or a fixed key such as "10m" or "1w".
func ParseDuration(s string) (DurationChoice, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "random" {
		return DurationRandom, nil
	}
	keys := []string{"random"}
	for _, f := range fixedDurations {
		if f.Key == s {
			return f.Choice, nil
		}
		keys = append(keys, f.Key)
	}
	return 0, fmt.Errorf("unknown duration %q (want one of %s)", s, strings.Join(keys, ", "))
}

// BannedText is the punishment text for every ban.
const BannedText = "PERMANENTLY BANNED"

// PenaltyText formats a timeout penalty label.
func PenaltyText(label string) string {
	return "Penalty of " + label
}

// PunishmentText derives the result text. Random timeouts draw one fixed
// penalty uniformly from rng.
func PunishmentText(mode Mode, choice DurationChoice, rng Rand) string {
	if mode == Ban {
		return BannedText
	}
	if f, ok := choice.Fixed(); ok {
		return PenaltyText(f.Label)
	}
	f := fixedDurations[rng.IntN(len(fixedDurations))]
	return PenaltyText(f.Label)
}
