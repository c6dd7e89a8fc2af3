package ui

import "fmt"

// RunErrorCount and RunWarningCount track errors/warnings during a run.
var RunErrorCount int
var RunWarningCount int

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Printf("%s%s%s %s\n", ColorGreen, SymbolCheck, ColorReset, msg)
}

// PrintError prints an error message and increments the error counter.
func PrintError(msg string) {
	RunErrorCount++
	fmt.Printf("%s%s%s %s\n", ColorRed, SymbolCross, ColorReset, msg)
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	fmt.Printf("%s%s%s %s\n", ColorBlue, SymbolInfo, ColorReset, msg)
}

// PrintWarning prints a warning message and increments the warning counter.
func PrintWarning(msg string) {
	RunWarningCount++
	fmt.Printf("%s%s%s %s\n", ColorYellow, SymbolWarning, ColorReset, msg)
}

// PrintMusic prints a show-listing message.
func PrintMusic(msg string) {
	fmt.Printf("%s%s%s %s\n", ColorGreen, SymbolMusic, ColorReset, msg)
}

// PrintHeader prints a bold section header.
func PrintHeader(title string) {
	fmt.Printf("\n%s%s%s%s\n", ColorBold, ColorCyan, title, ColorReset)
}
