package interpreter

import (
	"time"

	"github.com/arthur-debert/mflash/pkg/flashing"
)

// Reporter receives progress events of a run. Indexes are zero-based.
type Reporter interface {
	StepStarted(index, total int, step flashing.Step)
	CommandPrepared(index int, args []string, dryRun bool)
	StepSucceeded(index int, elapsed time.Duration)
	StepFailed(index int, err error)
	RunFinished(result *Result)
}

// NopReporter discards every event
type NopReporter struct{}

func (NopReporter) StepStarted(int, int, flashing.Step) {}
func (NopReporter) CommandPrepared(int, []string, bool) {}
func (NopReporter) StepSucceeded(int, time.Duration) {}
func (NopReporter) StepFailed(int, error) {}
func (NopReporter) RunFinished(*Result) {}
