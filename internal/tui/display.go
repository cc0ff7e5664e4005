package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// showMessage replaces the status region with text. Text is treated as plain
// text: escape sequences and control characters never reach the terminal.
func (a *App) showMessage(text string) {
	a.statusMsg = plainText(text)
}

func plainText(text string) string {
	text = ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20, r >= 0x7f && r <= 0x9f:
			return -1
		}
		return r
	}, text)
}
