package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	brandStyle    = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	headingStyle  = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	artistStyle   = lipgloss.NewStyle().Foreground(colorSubtext0).Italic(true)
	priceStyle    = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	infoStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Background(colorSurface0).Bold(true)
	activeTab     = lipgloss.NewStyle().Foreground(colorMantle).Background(colorBrand).Padding(0, 1).Bold(true)
	inactiveTab   = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 1)
	buttonStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 1)
	focusedButton = lipgloss.NewStyle().Foreground(colorMantle).Background(colorFocus).Padding(0, 1).Bold(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus).Padding(1, 2)
	footerKey     = lipgloss.NewStyle().Foreground(colorFocus)
)
