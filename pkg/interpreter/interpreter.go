package interpreter

import (
	"context"
	"time"

	"github.com/arthur-debert/mflash/pkg/command"
	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/flashing"
	"github.com/arthur-debert/mflash/pkg/integrity"
	"github.com/arthur-debert/mflash/pkg/logging"
	"github.com/arthur-debert/mflash/pkg/paths"
	"github.com/arthur-debert/mflash/pkg/runner"
	"github.com/rs/zerolog"
)

// Options configures an Interpreter. The zero value runs mfastboot with
// MD5 verification enabled.
type Options struct {
	// Tool is the flashing utility to invoke
	Tool string
	// SkipIntegrityCheck disables digest verification; files are still guarded
	SkipIntegrityCheck bool
	// DryRun logs commands instead of running them
	DryRun bool
	// Verbose raises per-step logging from debug to info
	Verbose bool
	// Algorithm names the digest used for verification
	Algorithm string

	// Runner overrides the process runner, mainly for tests
	Runner runner.Runner
	// Reporter receives progress events
	Reporter Reporter
}

// StepRecord describes one attempted step
type StepRecord struct {
	Index    int
	Step     flashing.Step
	File     string
	Verified bool
	Command  []string
	Duration time.Duration
	Err      error
}

// Result summarizes a run
type Result struct {
	State State
	// Total is the number of steps in the document
	Total int
	// Executed counts steps whose command was built and dispatched; in dry
	// run the command is logged instead of handed to the runner
	Executed int
	DryRun   bool
	Steps    []StepRecord
	Duration time.Duration
}

// Failed returns the record of the step that aborted the run, if any
func (r *Result) Failed() *StepRecord {
	if r.State != StateAborted || len(r.Steps) == 0 {
		return nil
	}
	return &r.Steps[len(r.Steps)-1]
}

// Interpreter executes flashing documents against one firmware directory
type Interpreter struct {
	firmwareDir string
	opts        Options
	checker     *integrity.Checker
	runner      runner.Runner
	reporter    Reporter
	logger      zerolog.Logger
}

// New creates an interpreter rooted at firmwareDir. The directory is
// resolved and checked here, before any document is run.
func New(firmwareDir string, opts Options) (*Interpreter, error) {
	dir, err := paths.EnsureDirectory(firmwareDir)
	if err != nil {
		return nil, err
	}

	if opts.Tool == "" {
		opts.Tool = command.DefaultTool
	}

	checker, err := integrity.NewChecker(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	r := opts.Runner
	if r == nil {
		r = runner.NewExecRunner(opts.DryRun)
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	return &Interpreter{
		firmwareDir: dir,
		opts:        opts,
		checker:     checker,
		runner:      r,
		reporter:    reporter,
		logger:      logging.GetLogger("interpreter"),
	}, nil
}

// FirmwareDir returns the resolved firmware directory
func (i *Interpreter) FirmwareDir() string {
	return i.firmwareDir
}

// Run executes the steps of doc in order and stops at the first failure.
// The returned Result is never nil; on failure the error is a *StepError
// unless the document itself was rejected before any step ran.
func (i *Interpreter) Run(ctx context.Context, doc *flashing.Document) (*Result, error) {
	start := time.Now()
	result := &Result{State: StatePending, DryRun: i.opts.DryRun}

	if doc == nil {
		result.State = StateAborted
		return result, errors.New(errors.ErrMalformedDocument, "no flashing document")
	}
	if err := doc.Validate(); err != nil {
		result.State = StateAborted
		return result, err
	}

	steps := doc.Steps.Steps
	result.Total = len(steps)

	i.logger.Info().
		Str("firmwareDir", i.firmwareDir).
		Str("tool", i.opts.Tool).
		Int("steps", result.Total).
		Bool("dryRun", i.opts.DryRun).
		Bool("integrity", !i.opts.SkipIntegrityCheck).
		Msg("Starting run")

	for index, step := range steps {
		result.State = StateRunning
		i.reporter.StepStarted(index, result.Total, step)

		record, err := i.runStep(ctx, index, step, result)
		result.Steps = append(result.Steps, record)
		if err != nil {
			result.State = StateAborted
			result.Duration = time.Since(start)
			i.reporter.StepFailed(index, err)
			i.logger.Error().
				Err(err).
				Int("step", index+1).
				Str("description", step.Describe()).
				Msg("Step failed, aborting run")
			i.reporter.RunFinished(result)
			return result, &StepError{Index: index, Step: step, Err: err}
		}

		i.reporter.StepSucceeded(index, record.Duration)
	}

	result.State = StateCompleted
	result.Duration = time.Since(start)
	i.logger.Info().
		Int("executed", result.Executed).
		Dur("duration", result.Duration).
		Msg("Run completed")
	i.reporter.RunFinished(result)
	return result, nil
}

func (i *Interpreter) runStep(ctx context.Context, index int, step flashing.Step, result *Result) (StepRecord, error) {
	start := time.Now()
	record := StepRecord{Index: index, Step: step}
	done := logging.LogOperationStart(i.logger, step.Operation)
	defer done()

	level := zerolog.DebugLevel
	if i.opts.Verbose {
		level = zerolog.InfoLevel
	}
	i.logger.WithLevel(level).
		Int("step", index+1).
		Str("operation", step.Operation).
		Str("partition", step.Partition).
		Str("filename", step.Filename).
		Str("var", step.Var).
		Str("md5", step.ExpectedDigest).
		Msg("Running step")

	fail := func(err error) (StepRecord, error) {
		record.Err = err
		record.Duration = time.Since(start)
		return record, err
	}

	if step.HasFile() {
		file, err := paths.ResolveFile(i.firmwareDir, step.Filename)
		if err != nil {
			return fail(err)
		}
		record.File = file

		if step.WantsVerification() && !i.opts.SkipIntegrityCheck {
			if err := i.checker.Verify(file, step.ExpectedDigest); err != nil {
				return fail(err)
			}
			record.Verified = true
		}
	}

	record.Command = command.Build(i.opts.Tool, step, record.File)
	i.reporter.CommandPrepared(index, record.Command, i.opts.DryRun)

	result.Executed++
	if i.opts.DryRun {
		i.logger.Info().
			Int("step", index+1).
			Str("commandLine", command.Render(record.Command)).
			Msg("Dry run mode - command would be executed")
	} else if err := i.runner.Run(ctx, record.Command, i.firmwareDir); err != nil {
		return fail(err)
	}

	record.Duration = time.Since(start)
	return record, nil
}
