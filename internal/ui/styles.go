package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/quizmd/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	Title    lipgloss.Style
	Question lipgloss.Style
	Option   lipgloss.Style
	Selected lipgloss.Style
	Correct  lipgloss.Style
	Wrong    lipgloss.Style
	Dim      lipgloss.Style
	Cursor   lipgloss.Style
	Code     lipgloss.Style
	Border   lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:    lipgloss.NewStyle().Bold(true),
		Question: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Option:   lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true),
		Correct:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Wrong:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Code:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	questionColor := parseANSIColor(config.GetColorQuestion())
	correctColor := parseANSIColor(config.GetColorCorrect())
	wrongColor := parseANSIColor(config.GetColorWrong())
	dimColor := lipgloss.Color(config.GetColorDim())
	borderColor := lipgloss.Color(config.GetColorBorder())
	cursorColor := lipgloss.Color(config.GetColorCursor())

	s.Question = lipgloss.NewStyle().Foreground(questionColor)
	s.Correct = lipgloss.NewStyle().Foreground(correctColor)
	s.Wrong = lipgloss.NewStyle().Foreground(wrongColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Cursor = lipgloss.NewStyle().Foreground(cursorColor)
	s.Border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
