package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/jaskpomo/internal/timer"
)

const defaultTickInterval = time.Second

// App mounts one timer widget full-screen.
type App struct {
	state    timer.State
	keys     *KeyRegistry
	log      *zap.Logger
	interval time.Duration

	// generation tags scheduled ticks; bumping it cancels the pending one.
	generation int

	focus    button
	showHelp bool
	width    int
	height   int
	hits     []hitBox
	quitting bool
}

// Options configures New. Zero values fall back to defaults.
type Options struct {
	State    timer.State
	Keys     *KeyRegistry
	Logger   *zap.Logger
	Interval time.Duration
}

type tickMsg struct {
	generation int
}

type button int

const (
	buttonWork button = iota
	buttonShortBreak
	buttonLongBreak
	buttonToggle
	buttonReset
	buttonCount
)

func New(opts Options) *App {
	if opts.Keys == nil {
		opts.Keys = NewKeyRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultTickInterval
	}
	if opts.State == (timer.State{}) {
		opts.State = timer.New(timer.DefaultDurations())
	}
	return &App{
		state:    opts.State,
		keys:     opts.Keys,
		log:      opts.Logger.With(zap.String("instance", uuid.NewString())),
		interval: opts.Interval,
		focus:    buttonToggle,
	}
}

// State returns the current countdown.
func (a *App) State() timer.State { return a.state }

func (a *App) Init() tea.Cmd {
	a.log.Info("timer mounted",
		zap.Stringer("mode", a.state.Mode()),
		zap.Int("remaining", a.state.Remaining()))
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(m)
	case tea.MouseMsg:
		return a, a.handleMouse(m)
	case tickMsg:
		return a, a.handleTick(m)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	b := a.keys.Lookup(msg.String(), scopeTimer)
	if b == nil {
		return nil
	}
	switch b.Action {
	case actionQuit:
		return a.quit()
	case actionHelp:
		a.showHelp = !a.showHelp
	case actionWork:
		a.selectMode(timer.Work)
	case actionShortBreak:
		a.selectMode(timer.ShortBreak)
	case actionLongBreak:
		a.selectMode(timer.LongBreak)
	case actionToggle:
		return a.toggle()
	case actionReset:
		a.reset()
	case actionFocusNext:
		a.focus = (a.focus + 1) % buttonCount
	case actionFocusPrev:
		a.focus = (a.focus + buttonCount - 1) % buttonCount
	case actionPress:
		return a.press(a.focus)
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, h := range a.hits {
		if h.contains(msg.X, msg.Y) {
			a.focus = h.button
			return a.press(h.button)
		}
	}
	return nil
}

func (a *App) press(b button) tea.Cmd {
	switch b {
	case buttonWork:
		a.selectMode(timer.Work)
	case buttonShortBreak:
		a.selectMode(timer.ShortBreak)
	case buttonLongBreak:
		a.selectMode(timer.LongBreak)
	case buttonToggle:
		return a.toggle()
	case buttonReset:
		a.reset()
	}
	return nil
}

func (a *App) selectMode(m timer.Mode) {
	a.state = a.state.SelectMode(m)
	a.cancelTick()
	a.log.Debug("mode selected", zap.Stringer("mode", m), zap.Int("remaining", a.state.Remaining()))
}

func (a *App) toggle() tea.Cmd {
	wasRunning := a.state.Running()
	a.state = a.state.ToggleStartPause()
	switch {
	case a.state.Running():
		a.cancelTick()
		a.log.Debug("countdown started", zap.Stringer("mode", a.state.Mode()), zap.Int("remaining", a.state.Remaining()))
		return a.scheduleTick()
	case wasRunning:
		a.cancelTick()
		a.log.Debug("countdown paused", zap.Stringer("mode", a.state.Mode()), zap.Int("remaining", a.state.Remaining()))
	default:
		a.log.Debug("start ignored on expired countdown", zap.Stringer("mode", a.state.Mode()))
	}
	return nil
}

func (a *App) reset() {
	a.state = a.state.Reset()
	a.cancelTick()
	a.log.Debug("reset", zap.Stringer("mode", a.state.Mode()), zap.Int("remaining", a.state.Remaining()))
}

func (a *App) quit() tea.Cmd {
	a.cancelTick()
	a.quitting = true
	a.log.Info("timer unmounted", zap.Stringer("phase", a.state.Phase()), zap.Int("remaining", a.state.Remaining()))
	return tea.Quit
}

func (a *App) handleTick(msg tickMsg) tea.Cmd {
	if msg.generation != a.generation || !a.state.Running() || a.quitting {
		a.log.Debug("stale tick dropped", zap.Int("generation", msg.generation), zap.Int("current", a.generation))
		return nil
	}
	a.state = a.state.Tick()
	if !a.state.Running() {
		a.cancelTick()
		a.log.Info("countdown expired", zap.Stringer("mode", a.state.Mode()))
		return nil
	}
	return a.scheduleTick()
}

func (a *App) cancelTick() {
	a.generation++
}

func (a *App) scheduleTick() tea.Cmd {
	gen := a.generation
	return tea.Tick(a.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: gen}
	})
}
