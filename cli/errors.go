package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/beancount-core/ast"
	"github.com/robinvdvleuten/beancount-core/position"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and input context.
type ErrorRenderer struct{}

// NewErrorRenderer creates a renderer.
func NewErrorRenderer() *ErrorRenderer {
	return &ErrorRenderer{}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	var perr *position.ParseError
	if errors.As(err, &perr) {
		return r.renderWithInput(perr.Error(), perr.Input, perr.Component)
	}

	if e, ok := err.(interface {
		GetPosition() ast.Position
		Error() string
	}); ok {
		return errorStyle.Render(e.GetPosition().String() + ": " + e.Error())
	}

	return errorStyle.Render(err.Error())
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// renderWithInput shows the offending input with a caret under the failing
// component, or under the start of the input when the whole of it failed.
func (r *ErrorRenderer) renderWithInput(message, input, component string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	buf.WriteString("   ")
	buf.WriteString(errContextStyle.Render(input))
	buf.WriteByte('\n')

	column := 0
	width := max(runewidth.StringWidth(strings.TrimSpace(input)), 1)
	if component != "" {
		if i := strings.Index(input, component); i >= 0 {
			column = runewidth.StringWidth(input[:i])
			width = max(runewidth.StringWidth(component), 1)
		}
	} else {
		column = runewidth.StringWidth(input) - runewidth.StringWidth(strings.TrimLeft(input, " \t"))
	}

	buf.WriteString("   ")
	buf.WriteString(strings.Repeat(" ", column))
	buf.WriteString(errCaretStyle.Render(strings.Repeat("^", width)))
	buf.WriteByte('\n')

	return buf.String()
}
