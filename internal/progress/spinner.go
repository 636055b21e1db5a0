package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner animates a message while a step runs. On a non-terminal it stays
// silent while running and only prints the final status line.
type Spinner struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
	message string
}

// NewSpinner creates a spinner drawing to w.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{w: w, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins animating message.
func (sp *Spinner) Start(message string) {
	sp.message = message
	if !sp.caps.IsTTY {
		return
	}

	sp.s = spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(sp.w))
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Success stops the spinner and prints message with a checkmark. An empty
// message repeats the one given to Start.
func (sp *Spinner) Success(message string) {
	sp.finish(sp.symbols.Checkmark, message)
}

// Fail stops the spinner and prints message with a failure mark.
func (sp *Spinner) Fail(message string) {
	sp.finish(sp.symbols.Failure, message)
}

// Stop stops the spinner without printing anything.
func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
		sp.s = nil
	}
}

func (sp *Spinner) finish(symbol, message string) {
	sp.Stop()
	if message == "" {
		message = sp.message
	}
	if !sp.caps.IsTTY {
		return
	}
	fmt.Fprintf(sp.w, "%s %s\n", symbol, message)
}
