package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/arthur-debert/mflash/pkg/command"
	"github.com/arthur-debert/mflash/pkg/flashing"
	"github.com/arthur-debert/mflash/pkg/interpreter"
	"github.com/charmbracelet/lipgloss"
)

// ConsoleReporter prints progress lines, styled when the renderer allows
type ConsoleReporter struct {
	w io.Writer

	heading lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
}

var _ interpreter.Reporter = (*ConsoleReporter)(nil)

// NewConsoleReporter builds the step styles from renderer
func NewConsoleReporter(w io.Writer, renderer *lipgloss.Renderer) *ConsoleReporter {
	return &ConsoleReporter{
		w:       w,
		heading: renderer.NewStyle().Bold(true),
		muted:   renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9E9E9E"}),
		success: renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00875F", Dark: "#5FD787"}).Bold(true),
		failure: renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}).Bold(true),
		notice:  renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"}),
	}
}

func (r *ConsoleReporter) StepStarted(index, total int, step flashing.Step) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.heading.Render(fmt.Sprintf("Running step %d/%d: %s", index+1, total, step.Describe())))
}

func (r *ConsoleReporter) CommandPrepared(_ int, args []string, dryRun bool) {
	line := "..Shell: " + command.Render(args)
	if dryRun {
		line += " (dry run)"
	}
	fmt.Fprintln(r.w, r.muted.Render(line))
}

func (r *ConsoleReporter) StepSucceeded(_ int, elapsed time.Duration) {
	fmt.Fprintln(r.w, r.success.Render(fmt.Sprintf("..OK (%s)", elapsed.Round(time.Millisecond))))
}

func (r *ConsoleReporter) StepFailed(_ int, err error) {
	fmt.Fprintln(r.w, r.failure.Render("..FAILED: "+err.Error()))
}

func (r *ConsoleReporter) RunFinished(result *interpreter.Result) {
	fmt.Fprintln(r.w)
	if result.State != interpreter.StateCompleted {
		failed := result.Failed()
		if failed == nil {
			fmt.Fprintln(r.w, r.failure.Render("Aborted before any step ran"))
			return
		}
		fmt.Fprintln(r.w, r.failure.Render(fmt.Sprintf("Aborted at step %d of %d", failed.Index+1, result.Total)))
		return
	}
	if result.DryRun {
		fmt.Fprintln(r.w, r.notice.Render("DRY RUN MODE - the flashing tool was not invoked"))
	}
	fmt.Fprintln(r.w, r.success.Render(fmt.Sprintf("Success! %d step(s) in %s", result.Total, result.Duration.Round(time.Millisecond))))
}
