// Package ui holds the terminal-facing pieces shared by the commands: the
// structured logger, the lipgloss palette and the yes/no prompt.
package ui
