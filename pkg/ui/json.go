package ui

import (
	"encoding/json"
	"io"
	"time"

	"github.com/arthur-debert/mflash/pkg/flashing"
	"github.com/arthur-debert/mflash/pkg/interpreter"
)

// Event is one line of JSON progress output
type Event struct {
	Event    string         `json:"event"`
	Step     int            `json:"step,omitempty"`
	Total    int            `json:"total,omitempty"`
	Details  *flashing.Step `json:"details,omitempty"`
	Command  []string       `json:"command,omitempty"`
	DryRun   bool           `json:"dryRun,omitempty"`
	Elapsed  string         `json:"elapsed,omitempty"`
	Error    string         `json:"error,omitempty"`
	State    string         `json:"state,omitempty"`
	Executed int            `json:"executed,omitempty"`
}

// JSONReporter writes events as JSON lines
type JSONReporter struct {
	enc *json.Encoder
}

var _ interpreter.Reporter = (*JSONReporter)(nil)

// NewJSONReporter creates a reporter writing to w
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w)}
}

func (r *JSONReporter) emit(e Event) {
	_ = r.enc.Encode(e)
}

func (r *JSONReporter) StepStarted(index, total int, step flashing.Step) {
	r.emit(Event{Event: "step_started", Step: index + 1, Total: total, Details: &step})
}

func (r *JSONReporter) CommandPrepared(index int, args []string, dryRun bool) {
	r.emit(Event{Event: "command_prepared", Step: index + 1, Command: args, DryRun: dryRun})
}

func (r *JSONReporter) StepSucceeded(index int, elapsed time.Duration) {
	r.emit(Event{Event: "step_succeeded", Step: index + 1, Elapsed: elapsed.String()})
}

func (r *JSONReporter) StepFailed(index int, err error) {
	r.emit(Event{Event: "step_failed", Step: index + 1, Error: err.Error()})
}

func (r *JSONReporter) RunFinished(result *interpreter.Result) {
	r.emit(Event{
		Event:    "run_finished",
		Total:    result.Total,
		State:    result.State.String(),
		Executed: result.Executed,
		DryRun:   result.DryRun,
		Elapsed:  result.Duration.String(),
	})
}
