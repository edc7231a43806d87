package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Help         lipgloss.Style
	Footer       lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardName     lipgloss.Style
	CardVersion  lipgloss.Style
	CardDesc     lipgloss.Style
	CardMeta     lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Option       lipgloss.Style
	OptionActive lipgloss.Style
	Cursor       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("99")),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Help:        lipgloss.NewStyle().Faint(true),
		Footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1),
		CardName:    lipgloss.NewStyle().Bold(true),
		CardVersion: lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		CardDesc:    lipgloss.NewStyle(),
		CardMeta:    lipgloss.NewStyle().Faint(true),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Option:       lipgloss.NewStyle(),
		OptionActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		Cursor: lipgloss.NewStyle().Reverse(true),
	}
}
