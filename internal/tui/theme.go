package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// Theme is the color palette of the editor. Colors are ANSI 256 codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusInTeam lipgloss.Color
	StatusInPC   lipgloss.Color
	StatusSeen   lipgloss.Color
	StatusDead   lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	FocusColor       lipgloss.Color
	ErrorText        lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme targets dark terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("242"),

	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),

	StatusInTeam: lipgloss.Color("42"),
	StatusInPC:   lipgloss.Color("39"),
	StatusSeen:   lipgloss.Color("245"),
	StatusDead:   lipgloss.Color("160"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	FocusColor:       lipgloss.Color("212"),
	ErrorText:        lipgloss.Color("203"),
	HelpText:         lipgloss.Color("241"),
}

// StatusColor returns the color of status, FaintText when unknown.
func (theme Theme) StatusColor(status types.Status) lipgloss.Color {
	switch status {
	case types.StatusInTeam:
		return theme.StatusInTeam
	case types.StatusInPC:
		return theme.StatusInPC
	case types.StatusSeen:
		return theme.StatusSeen
	case types.StatusDead:
		return theme.StatusDead
	default:
		return theme.FaintText
	}
}
