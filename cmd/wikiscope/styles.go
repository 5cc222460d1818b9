package main

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#2563EB")
	muted   = lipgloss.Color("#64748B")
	accent  = lipgloss.Color("#F59E0B")
	danger  = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted)

	queryStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(accent)

	errorStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	bulletStyle = lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(2)
)

func bullet(s string) string {
	return bulletStyle.Render("•") + " " + s
}
