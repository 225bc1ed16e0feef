package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.Color("#00D7FF") // cyan: running / title
	colorSuccess = lipgloss.Color("#87FF5F") // green: decoded
	colorWarning = lipgloss.Color("#FFD700") // yellow: key hints
	colorDanger  = lipgloss.Color("#FF5555") // red: failure
	colorMuted   = lipgloss.Color("#555577") // dim gray: paths / hints
	colorBorder  = lipgloss.Color("#333355") // viewer border
)

// Status bar (top)
var statusBarStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#0D0D1A")).
	Foreground(colorPrimary).
	Padding(0, 1)

var (
	appNameStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	messageStyle = lipgloss.NewStyle().Foreground(colorPrimary)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	keyHintStyle = lipgloss.NewStyle().Foreground(colorWarning)
)

// Failure detail box
var detailBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDanger).
	Padding(0, 1)

// Decoded file viewer
var viewerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder)
