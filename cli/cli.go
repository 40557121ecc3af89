// Package cli implements the commands of the beancount-core binary, which
// inspect positions and inventories written in the compact notation.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/robinvdvleuten/beancount-core/output"
	"github.com/robinvdvleuten/beancount-core/telemetry"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"
	warningSymbol = "!"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD75F"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

func printWarningf(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		warningStyle.Render(warningSymbol),
		warningStyle.Render(formatted),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// newStyles returns styles for w. Output that is not a terminal is never
// coloured.
func newStyles(w io.Writer) *output.Styles {
	if !isTerminal(w) {
		return output.NewPlainStyles(w)
	}
	return output.NewStyles(w)
}

// PositionsOrStdin holds compact positions given as arguments. When none are
// given they are read from stdin, one per line.
type PositionsOrStdin []string

// Resolve reads the positions from r if none were passed as arguments. Blank
// lines and lines starting with ';' are skipped.
func (p *PositionsOrStdin) Resolve(r io.Reader) error {
	if len(*p) > 0 {
		return nil
	}
	if r == nil {
		return fmt.Errorf("no positions given")
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		*p = append(*p, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(*p) == 0 {
		return fmt.Errorf("no positions given")
	}
	return nil
}

// session carries what every command run shares: the run context and the
// optional telemetry collector.
type session struct {
	ctx       context.Context
	collector telemetry.Collector
	timer     telemetry.Timer
}

// startSession sets up telemetry when requested. The returned function ends
// the root timer and reports to stderr.
func startSession(kctx *kong.Context, globals *Globals, name string) (*session, func()) {
	s := &session{ctx: context.Background()}
	if !globals.Telemetry {
		return s, func() {}
	}

	s.collector = telemetry.NewTimingCollector()
	s.ctx = telemetry.WithCollector(s.ctx, s.collector)
	s.timer = s.collector.Start(name)
	s.ctx = telemetry.WithRootTimer(s.ctx, s.timer)

	return s, func() {
		s.timer.End()
		_, _ = fmt.Fprintln(kctx.Stderr)
		s.collector.Report(kctx.Stderr, newStyles(kctx.Stderr))
	}
}
