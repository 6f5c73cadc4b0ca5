/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package ui provides terminal styles for command feedback.
package ui

import (
	"os"

	"charm.land/lipgloss/v2"
)

// Styles contains the styles used for deploy and destroy feedback
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
}

// NewStyles creates styles, honouring NO_COLOR and the explicit flag
func NewStyles(useColour bool) *Styles {
	if os.Getenv("NO_COLOR") != "" {
		useColour = false
	}

	s := &Styles{}
	if !useColour {
		plain := lipgloss.NewStyle()
		s.Success, s.Warning, s.Key, s.Value, s.Subtle = plain, plain, plain, plain, plain
		return s
	}

	s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	s.Value = lipgloss.NewStyle()
	s.Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return s
}
