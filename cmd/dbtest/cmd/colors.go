package cmd

import (
	"os"
	"runtime"
)

// ANSI color codes
const (
	Reset = "\033[0m"
	Red   = "\033[31m"
	Green = "\033[32m"
)

var (
	// colorsEnabled is cached result of supportsColor()
	colorsEnabled = -1
)

// supportsColor checks if the terminal supports colors
func supportsColor() bool {
	if colorsEnabled != -1 {
		return colorsEnabled == 1
	}

	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		colorsEnabled = 0
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" {
		colorsEnabled = 0
		return false
	}

	if runtime.GOOS == "windows" && os.Getenv("WT_SESSION") == "" && os.Getenv("ANSICON") == "" {
		colorsEnabled = 0
		return false
	}

	colorsEnabled = 1
	return true
}

// colorize wraps text in a color code when the terminal supports it
func colorize(color, text string) string {
	if !supportsColor() {
		return text
	}
	return color + text + Reset
}
