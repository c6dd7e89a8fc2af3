package ui

import "os"

// ANSI color codes - exported for use across packages.
var (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[91m"
	ColorGreen  = "\033[92m"
	ColorYellow = "\033[93m"
	ColorBlue   = "\033[94m"
	ColorPurple = "\033[95m"
	ColorCyan   = "\033[96m"
	ColorBold   = "\033[1m"
)

// Unicode symbols
var (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolArrow   = "→"
	SymbolMusic   = "♪"
	SymbolInfo    = "ℹ"
	SymbolWarning = "⚠"

	BulletArrow = "▸"
)

func init() {
	// Honor NO_COLOR (https://no-color.org) and dumb terminals.
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		disableColors()
	}
}

func disableColors() {
	ColorReset = ""
	ColorRed = ""
	ColorGreen = ""
	ColorYellow = ""
	ColorBlue = ""
	ColorPurple = ""
	ColorCyan = ""
	ColorBold = ""
}
