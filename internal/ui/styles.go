package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("94")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("180"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("58"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	// индикаторы настроенности модулей в списке каналов
	readyDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("●")
	pendingDot = lipgloss.NewStyle().Foreground(lipgloss.Color("178")).Render("●")
	offlineDot = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("●")

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("94")).
			Padding(1, 2)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("187"))

	requiredMark = errorStyle.Render("*")

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
