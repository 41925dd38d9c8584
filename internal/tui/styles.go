package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).MarginBottom(1)

	labelStyle        = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("245"))
	focusedLabelStyle = labelStyle.Foreground(lipgloss.Color("62")).Bold(true)

	buttonBase = lipgloss.NewStyle().Padding(0, 2).Bold(true)
	// Bootstrap primary and warning colours.
	addButtonStyle    = buttonBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#0d6efd"))
	updateButtonStyle = buttonBase.Foreground(lipgloss.Color("#212529")).Background(lipgloss.Color("#ffc107"))
	buttonFocusMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)

	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)
	sectionStyle     = lipgloss.NewStyle().MarginTop(1)
)
