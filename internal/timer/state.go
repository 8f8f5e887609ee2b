package timer

import "fmt"

// Phase is the coarse state of the countdown.
type Phase int

const (
	Idle Phase = iota
	Running
	Expired
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the countdown for one mounted widget.
// Invariant: 0 <= remaining <= durations.Seconds(mode).
type State struct {
	durations Durations
	mode      Mode
	remaining int
	running   bool
}

// New returns Idle(Work) with the full work duration remaining.
func New(d Durations) State {
	return NewWithMode(d, Work)
}

// NewWithMode returns Idle(m) with the full duration of m remaining.
func NewWithMode(d Durations, m Mode) State {
	if !m.Valid() {
		m = Work
	}
	return State{durations: d, mode: m, remaining: d.Seconds(m)}
}

func (s State) Mode() Mode     { return s.mode }
func (s State) Remaining() int { return s.remaining }
func (s State) Running() bool  { return s.running }

// Duration is the nominal length in seconds of the current mode.
func (s State) Duration() int {
	return s.durations.Seconds(s.mode)
}

func (s State) Phase() Phase {
	switch {
	case s.running:
		return Running
	case s.remaining == 0:
		return Expired
	default:
		return Idle
	}
}

// SelectMode switches to m with its full duration remaining, stopped.
func (s State) SelectMode(m Mode) State {
	if !m.Valid() {
		return s
	}
	s.mode = m
	s.remaining = s.durations.Seconds(m)
	s.running = false
	return s
}

// ToggleStartPause flips between running and paused. An expired countdown
// stays expired; Reset or SelectMode is needed to run again.
func (s State) ToggleStartPause() State {
	if !s.running && s.remaining == 0 {
		return s
	}
	s.running = !s.running
	return s
}

// Reset restores the full duration of the current mode, stopped.
func (s State) Reset() State {
	s.remaining = s.durations.Seconds(s.mode)
	s.running = false
	return s
}

// Tick advances a running countdown by one second. Reaching zero stops it.
func (s State) Tick() State {
	if !s.running || s.remaining <= 0 {
		return s
	}
	s.remaining--
	if s.remaining == 0 {
		s.running = false
	}
	return s
}

// Clock renders the remaining time as zero-padded MM:SS.
func (s State) Clock() string {
	return FormatClock(s.remaining)
}

// Progress is the elapsed fraction of the current mode, in [0, 1].
func (s State) Progress() float64 {
	total := s.Duration()
	if total <= 0 {
		return 0
	}
	return 1 - float64(s.remaining)/float64(total)
}

// FormatClock renders seconds as MM:SS. Negative input renders as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
