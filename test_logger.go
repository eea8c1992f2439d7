package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/probedock/probedock-demo-go/framework"
)

var (
	passColor    = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed, color.Bold)
	pendingColor = color.New(color.FgCyan)
	suiteColor   = color.New(color.Bold)
)

// consoleTestLogger prints one line per suite and test as the run progresses.
type consoleTestLogger struct {
	out                  io.Writer
	debugOutputOnFailure bool
	debugOutputOnSuccess bool
	depth                int
}

func (c *consoleTestLogger) HandleEvent(e framework.Event) {
	switch e.Kind {
	case framework.EventSuite:
		if !e.Suite.IsRoot() {
			suiteColor.Fprintf(c.out, "%s%s\n", c.indent(), e.Suite.Title)
			c.depth++
		}
	case framework.EventSuiteEnd:
		if !e.Suite.IsRoot() {
			c.depth--
		}
	case framework.EventPass:
		passColor.Fprintf(c.out, "%s✓ %s", c.indent(), e.Test.Title)
		fmt.Fprintf(c.out, " (%dms)\n", e.Test.Duration.Milliseconds())
		if c.debugOutputOnSuccess {
			e.DebugOutput.Dump(c.out, c.indent()+"    DEBUG ")
		}
	case framework.EventFail:
		failColor.Fprintf(c.out, "%s✗ %s\n", c.indent(), e.Test.Title)
		for _, line := range strings.Split(e.Failure.Error(), "\n") {
			fmt.Fprintf(c.out, "%s    %s\n", c.indent(), line)
		}
		if e.Failure.HasValues() {
			fmt.Fprintf(c.out, "%s    expected: %s\n", c.indent(), e.Failure.Expected.OrElse("undefined"))
			fmt.Fprintf(c.out, "%s    actual:   %s\n", c.indent(), e.Failure.Actual.OrElse("undefined"))
		}
		if c.debugOutputOnFailure {
			e.DebugOutput.Dump(c.out, c.indent()+"    DEBUG ")
		}
	case framework.EventPending:
		if e.Reason == "" {
			pendingColor.Fprintf(c.out, "%s- %s\n", c.indent(), e.Test.Title)
		} else {
			pendingColor.Fprintf(c.out, "%s- %s (%s)\n", c.indent(), e.Test.Title, e.Reason)
		}
	}
}

func (c *consoleTestLogger) indent() string {
	return strings.Repeat("  ", c.depth)
}
