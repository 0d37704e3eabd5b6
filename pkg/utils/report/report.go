package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/relware/mapship/pkg/domain/interfaces"
)

// consoleReporter writes colored status lines to a single writer. Concurrent
// upload tasks report through it, so each line is written under a lock to
// keep lines whole; line ordering across tasks is not guaranteed.
type consoleReporter struct {
	mu  sync.Mutex
	out io.Writer

	info    *color.Color
	success *color.Color
	failure *color.Color
}

// NewConsole creates a Reporter that prints colored lines to out
func NewConsole(out io.Writer) interfaces.Reporter {
	return &consoleReporter{
		out:     out,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

func (r *consoleReporter) Info(format string, args ...any) {
	r.write(r.info, format, args...)
}

func (r *consoleReporter) Success(format string, args ...any) {
	r.write(r.success, format, args...)
}

func (r *consoleReporter) Failure(format string, args ...any) {
	r.write(r.failure, format, args...)
}

func (r *consoleReporter) write(c *color.Color, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = c.Fprintln(r.out, fmt.Sprintf(format, args...))
}
