package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskpomo/internal/timer"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

// Latte variants of the mode colors, used for the selected mode button.
const (
	colorRedDeep   lipgloss.Color = "#d20f39"
	colorBlueDeep  lipgloss.Color = "#1e66f5"
	colorGreenDeep lipgloss.Color = "#40a02b"
)

const colorFocus = colorLavender

// modeColor is the page background for m.
func modeColor(m timer.Mode) lipgloss.Color {
	switch m {
	case timer.ShortBreak:
		return colorBlue
	case timer.LongBreak:
		return colorGreen
	default:
		return colorRed
	}
}

// modeAccent is the background of the selected mode button.
func modeAccent(m timer.Mode) lipgloss.Color {
	switch m {
	case timer.ShortBreak:
		return colorBlueDeep
	case timer.LongBreak:
		return colorGreenDeep
	default:
		return colorRedDeep
	}
}

// AllPaletteColors returns every color the UI draws with, for testing.
func AllPaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorRed, colorGreen, colorBlue, colorLavender,
		colorText, colorSubtext1, colorSubtext0, colorOverlay0,
		colorSurface1, colorSurface0, colorBase, colorMantle, colorCrust,
		colorRedDeep, colorBlueDeep, colorGreenDeep,
	}
}
