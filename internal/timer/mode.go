// Package timer holds the Pomodoro countdown state machine.
//
// A State is a value: every operation returns the next State and leaves the
// receiver untouched. Nothing in this package performs I/O or schedules work;
// the caller owns the one-second tick.
package timer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// Mode is one of the three timer phases.
type Mode int

const (
	Work Mode = iota
	ShortBreak
	LongBreak
)

var (
	ErrUnknownMode     = errors.New("unknown mode")
	ErrInvalidDuration = errors.New("invalid duration")
)

// MaxDuration is the longest countdown that still renders as MM:SS.
const MaxDuration = 99*time.Minute + 59*time.Second

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{Work, ShortBreak, LongBreak}
}

func (m Mode) String() string {
	switch m {
	case Work:
		return "work"
	case ShortBreak:
		return "shortBreak"
	case LongBreak:
		return "longBreak"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Label is the button caption for the mode.
func (m Mode) Label() string {
	switch m {
	case Work:
		return "Work"
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		return m.String()
	}
}

// Valid reports whether m is one of the three defined modes.
func (m Mode) Valid() bool {
	return m >= Work && m <= LongBreak
}

var modeAliases = map[string]Mode{
	"work":        Work,
	"shortbreak":  ShortBreak,
	"short":       ShortBreak,
	"short-break": ShortBreak,
	"short_break": ShortBreak,
	"longbreak":   LongBreak,
	"long":        LongBreak,
	"long-break":  LongBreak,
	"long_break":  LongBreak,
}

// ParseMode resolves a user-supplied mode name. Matching is case-insensitive.
// An unknown name yields an error wrapping ErrUnknownMode that suggests the
// closest known name when one is near enough.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if m, ok := modeAliases[name]; ok {
		return m, nil
	}
	if hint := suggestMode(name); hint != "" {
		return Work, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownMode, s, hint)
	}
	return Work, fmt.Errorf("%w %q (want work, shortBreak or longBreak)", ErrUnknownMode, s)
}

func suggestMode(name string) string {
	if name == "" {
		return ""
	}
	aliases := make([]string, 0, len(modeAliases))
	for a := range modeAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)

	best, bestDist := "", 4
	for _, a := range aliases {
		if d := levenshtein.ComputeDistance(name, a); d < bestDist {
			best, bestDist = modeAliases[a].String(), d
		}
	}
	return best
}

// Durations maps each mode to its nominal countdown length.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns 25/5/15 minutes.
func DefaultDurations() Durations {
	return Durations{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// Of returns the duration of m.
func (d Durations) Of(m Mode) time.Duration {
	switch m {
	case ShortBreak:
		return d.ShortBreak
	case LongBreak:
		return d.LongBreak
	default:
		return d.Work
	}
}

// Seconds returns the duration of m in whole seconds.
func (d Durations) Seconds(m Mode) int {
	return int(d.Of(m) / time.Second)
}

// Validate checks that every duration is a whole number of seconds between
// one second and MaxDuration.
func (d Durations) Validate() error {
	for _, m := range Modes() {
		v := d.Of(m)
		switch {
		case v < time.Second:
			return fmt.Errorf("%w: %s is %s, must be at least 1s", ErrInvalidDuration, m, v)
		case v > MaxDuration:
			return fmt.Errorf("%w: %s is %s, must be at most %s", ErrInvalidDuration, m, v, MaxDuration)
		case v%time.Second != 0:
			return fmt.Errorf("%w: %s is %s, must be whole seconds", ErrInvalidDuration, m, v)
		}
	}
	return nil
}
