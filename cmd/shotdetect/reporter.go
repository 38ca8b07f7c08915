package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// terminalReporter prints status lines and shows extraction progress on
// stderr when it is a terminal.
type terminalReporter struct {
	mu       sync.Mutex
	out      io.Writer
	err      io.Writer
	progress *progressbar.ProgressBar
	showBar  bool
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	magenta  *color.Color
	bold     *color.Color
}

func newTerminalReporter(out, err io.Writer) *terminalReporter {
	return &terminalReporter{
		out:     out,
		err:     err,
		showBar: isTerminal(err),
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *terminalReporter) Heading(title string) {
	fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, title)
}

func (r *terminalReporter) Label(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *terminalReporter) Step(format string, a ...interface{}) {
	fmt.Fprintf(r.out, "  %s %s\n", r.magenta.Sprint("›"), fmt.Sprintf(format, a...))
}

func (r *terminalReporter) Success(format string, a ...interface{}) {
	fmt.Fprintf(r.out, "  %s\n", r.green.Sprintf(format, a...))
}

func (r *terminalReporter) Warning(format string, a ...interface{}) {
	fmt.Fprintf(r.out, "  %s\n", r.yellow.Sprintf(format, a...))
}

func (r *terminalReporter) Print(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *terminalReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.showBar {
		return
	}
	r.progress = progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(r.err),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Extracting [",
			BarEnd:        "]",
		}),
	)
}

func (r *terminalReporter) Increment() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Add(1)
	}
}

func (r *terminalReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func errorLine(err error) string {
	return color.New(color.FgRed, color.Bold).Sprint("error: ") + err.Error()
}
