package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG  = pterm.FgLightGreen
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	debugColorFG = pterm.FgDarkGray
)

// displayCompileError displays a compilation error with its source position.
func displayCompileError(srcPath string, span *TextSpan, message string) {
	errorStyleBG.Print("Error")

	if span == nil {
		fmt.Printf(" %s: %s\n", srcPath, message)
	} else {
		fmt.Printf(" %s:%d:%d: %s\n", srcPath, span.StartLine+1, span.StartCol+1, message)
	}
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + message)
}

const icePostlude = "This error was not supposed to happen: please open an issue on GitHub."

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	errorStyleBG.Print("Internal Compiler Error")
	errorColorFG.Println(" " + message)
	infoColorFG.Println(icePostlude)
}

// displayDebugMessage displays an indented debug trace line.
func displayDebugMessage(depth int, message string) {
	debugColorFG.Println(strings.Repeat("  ", depth) + message)
}

// DisplayInfoMessage prints an informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	infoStyleBG.Print(tag)
	infoColorFG.Println(" " + msg)
}

// DisplayErrorCount prints the concluding error tally for a failed
// compilation.
func DisplayErrorCount(count int) {
	errorStyleBG.Print("Failed")

	if count == 1 {
		errorColorFG.Println(" 1 error")
	} else {
		errorColorFG.Printf(" %d errors\n", count)
	}
}
