// Package ui renders run progress for humans and machines.
//
// Reporters implement interpreter.Reporter. The terminal and text formats
// print one block per step in the shape operators of manual flashing
// procedures are used to:
//
//	Running step 3/12: flash boot boot.img
//	..Shell: "mfastboot" "flash" "boot" "/fw/boot.img"
//	..OK (1.2s)
//
// The JSON format emits one object per event for wrapping tools.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/mflash/pkg/interpreter"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NewReporter creates a reporter for the given format writing to w
func NewReporter(format Format, w io.Writer) (interpreter.Reporter, error) {
	switch format {
	case FormatAuto:
		return NewReporter(DetectFormat(w), w)
	case FormatTerminal:
		return NewConsoleReporter(w, lipgloss.NewRenderer(w)), nil
	case FormatText:
		renderer := lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.Ascii)
		return NewConsoleReporter(w, renderer), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
