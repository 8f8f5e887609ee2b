package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskpomo/internal/timer"
)

// ---------------------------------------------------------------------------
// Styles — Catppuccin Mocha themed
// ---------------------------------------------------------------------------

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Background(colorBase).
			Padding(1, 3)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface1).
			Padding(0, 2)

	selectedButtonStyle = buttonStyle.
				Foreground(colorCrust).
				Bold(true)

	disabledButtonStyle = buttonStyle.
				Foreground(colorOverlay0)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorBase)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorFocus).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)
)

const (
	buttonGap     = 2
	progressWidth = 27
	cardPadX      = 3
	cardPadY      = 1
	// border + horizontal padding on each side
	cardChromeX = 2 + 2*cardPadX
	// plain clock replaces the large one below this height
	minBigClockHeight = 20
)

type hitBox struct {
	button        button
	x, y          int
	width, height int
}

func (h hitBox) contains(x, y int) bool {
	return x >= h.x && x < h.x+h.width && y >= h.y && y < h.y+h.height
}

// row is one line group of the card with the buttons laid out on it.
type row struct {
	text    string
	buttons []rowButton
}

type rowButton struct {
	button button
	offset int
	width  int
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	mode := a.state.Mode()
	bg := modeColor(mode)

	rows := []row{
		a.modeRow(),
		{text: ""},
		{text: a.clock()},
		{text: ""},
		{text: a.progressBar()},
		{text: ""},
		a.controlRow(),
		{text: ""},
		{text: statusStyle.Render(a.statusLine())},
	}

	innerWidth := 0
	for _, r := range rows {
		innerWidth = max(innerWidth, lipgloss.Width(r.text))
	}

	// Center each row inside the card, recording where its buttons land.
	type placed struct {
		line int
		left int
		row  row
	}
	var lines []string
	var layout []placed
	for _, r := range rows {
		left := (innerWidth - lipgloss.Width(r.text)) / 2
		layout = append(layout, placed{line: len(lines), left: left, row: r})
		block := lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, r.text,
			lipgloss.WithWhitespaceBackground(colorBase))
		lines = append(lines, strings.Split(block, "\n")...)
	}

	card := cardStyle.BorderBackground(bg).Render(strings.Join(lines, "\n"))
	footer := a.renderFooter()

	if a.width == 0 || a.height == 0 {
		a.hits = nil
		return card + "\n" + footer
	}

	bodyHeight := max(1, a.height-lipgloss.Height(footer))
	cardX := max(0, (a.width-lipgloss.Width(card))/2)
	cardY := max(0, (bodyHeight-lipgloss.Height(card))/2)

	a.hits = a.hits[:0]
	for _, p := range layout {
		for _, b := range p.row.buttons {
			a.hits = append(a.hits, hitBox{
				button: b.button,
				x:      cardX + 1 + cardPadX + p.left + b.offset,
				y:      cardY + 1 + cardPadY + p.line,
				width:  b.width,
				height: 1,
			})
		}
	}

	body := lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(bg))
	return body + "\n" + footer
}

func (a *App) modeRow() row {
	var labels []string
	var r row
	for i, m := range timer.Modes() {
		b := button(i)
		var style lipgloss.Style
		if m == a.state.Mode() {
			style = selectedButtonStyle.Background(modeAccent(m))
		} else {
			style = buttonStyle
		}
		labels = append(labels, a.renderButton(b, style, m.Label()))
	}
	r.text, r.buttons = joinButtons([]button{buttonWork, buttonShortBreak, buttonLongBreak}, labels)
	return r
}

func (a *App) controlRow() row {
	toggleLabel := "Start"
	toggleStyle := buttonStyle
	switch a.state.Phase() {
	case timer.Running:
		toggleLabel = "Pause"
	case timer.Expired:
		toggleStyle = disabledButtonStyle
	}
	labels := []string{
		a.renderButton(buttonToggle, toggleStyle, toggleLabel),
		a.renderButton(buttonReset, buttonStyle, "Reset"),
	}
	var r row
	r.text, r.buttons = joinButtons([]button{buttonToggle, buttonReset}, labels)
	return r
}

func (a *App) renderButton(b button, style lipgloss.Style, label string) string {
	if a.focus == b {
		// Same width as the unfocused button so hit boxes stay put.
		return style.Underline(true).Padding(0, 1).Render("›" + label + "‹")
	}
	return style.Render(label)
}

func joinButtons(ids []button, rendered []string) (string, []rowButton) {
	gap := lipgloss.NewStyle().Background(colorBase).Render(strings.Repeat(" ", buttonGap))
	var out []rowButton
	offset := 0
	for i, s := range rendered {
		w := lipgloss.Width(s)
		out = append(out, rowButton{button: ids[i], offset: offset, width: w})
		offset += w + buttonGap
	}
	return strings.Join(rendered, gap), out
}

func (a *App) clock() string {
	text := a.state.Clock()
	style := lipgloss.NewStyle().Foreground(modeColor(a.state.Mode())).Background(colorBase).Bold(true)
	big := bigDigits(text)
	if (a.width > 0 && a.width < lipgloss.Width(big)+cardChromeX) ||
		(a.height > 0 && a.height < minBigClockHeight) {
		return style.Render(text)
	}
	return style.Render(big)
}

func (a *App) progressBar() string {
	filled := int(math.Round(a.state.Progress() * progressWidth))
	filled = min(max(filled, 0), progressWidth)
	done := lipgloss.NewStyle().Foreground(modeColor(a.state.Mode())).Background(colorBase).
		Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(colorSurface1).Background(colorBase).
		Render(strings.Repeat("░", progressWidth-filled))
	return done + rest
}

func (a *App) statusLine() string {
	return a.state.Mode().Label() + " · " + a.state.Clock() + " · " + statusText(a.state)
}

func statusText(s timer.State) string {
	switch s.Phase() {
	case timer.Running:
		return "Running"
	case timer.Expired:
		return "Time's up"
	default:
		if s.Remaining() < s.Duration() {
			return "Paused"
		}
		return "Ready"
	}
}

func (a *App) renderFooter() string {
	var bindings []key.Binding
	if a.showHelp {
		bindings = a.keys.FullHelp()
	} else {
		bindings = a.keys.ShortHelp()
	}

	// Build help text where every character carries the footer background.
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if a.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(content)
}
