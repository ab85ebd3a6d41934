// Package tui holds the terminal presentation helpers for the interactive
// chat command.
package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII banner for the chat mode.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String(`  _           _ _ _                              `).Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(` | |__   ___ | (_) |__   __ _ ______ _  __ _ _ __`).Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(` | '_ \ / _ \| | | '_ \ / _' |_  / _' |/ _' | '__|`).Foreground(p.Color("#f97316"))
	s4 := termenv.String(` | |_) | (_) | | | |_) | (_| |/ / (_| | (_| | |  `).Foreground(p.Color("#ea580c"))
	s5 := termenv.String(` |_.__/ \___/|_|_|_.__/ \__,_/___\__,_|\__,_|_|  `).Foreground(p.Color("#dc2626"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}

// Assistant renders the assistant's reply with its speaker label.
func Assistant(text string) string {
	p := termenv.ColorProfile()
	label := termenv.String("bazaar> ").Foreground(p.Color("#34d399")).Bold()
	return label.String() + text
}

// Notice renders a dim informational line.
func Notice(text string) string {
	p := termenv.ColorProfile()
	return termenv.String(text).Foreground(p.Color("#9ca3af")).String()
}
