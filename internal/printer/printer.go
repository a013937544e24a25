// Package printer is the mf CLI's terminal output layer. Progress and
// results go to stdout; failures are printed to stderr as a colored block
// with a title, an explanation, and concrete suggestions, while the error
// value handed back to cobra carries only the title.
package printer

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

func init() {
	// Keep color on even without a TTY so piped output matches what the
	// terminal shows. NO_COLOR disables it.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	fail    = color.New(color.FgRed, color.Bold)
	step    = color.New(color.FgCyan)
)

// Success prints a green checkmarked message.
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if strings.HasPrefix(msg, "✓") {
		success.Print(msg)
		return
	}
	success.Printf("✓ %s", msg)
}

// Warning prints a yellow warning message.
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if strings.HasPrefix(msg, "⚠️") {
		warn.Print(msg)
		return
	}
	warn.Printf("⚠️  %s", msg)
}

// Step prints one stage of a multi-step operation in cyan.
func Step(format string, a ...any) {
	step.Printf("→ %s", fmt.Sprintf(format, a...))
}

// Info prints an uncolored informational message.
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Println prints a plain line.
func Println(a ...any) {
	fmt.Println(a...)
}

// Printf prints a plain formatted message.
func Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Error writes a structured failure block to stderr and returns an error
// whose message is just the title. Cobra runs with SilenceErrors, so the
// block is the only thing the user sees and the title is what scripts get.
func Error(title string, explanation string, suggestions []string) error {
	fail.Fprintf(os.Stderr, "%s\n\n", title)
	fmt.Fprintf(os.Stderr, "%s\n", explanation)

	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(os.Stderr, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(os.Stderr, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, s)
		}
	}

	return fmt.Errorf("%s", title)
}
