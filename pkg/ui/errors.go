package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// RenderError prints a fatal error to w, followed by the details carried
// by coded errors, one per line in key order
func RenderError(w io.Writer, err error) {
	if err == nil {
		return
	}

	renderer := lipgloss.NewRenderer(w)
	if DetectFormat(w) != FormatTerminal {
		renderer.SetColorProfile(termenv.Ascii)
	}
	errorStyle := renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}).Bold(true)
	detailStyle := renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9E9E9E"})

	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintln(w, detailStyle.Render(fmt.Sprintf("  %s: %v", k, details[k])))
	}
}
