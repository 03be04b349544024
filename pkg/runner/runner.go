// Package runner executes the external flashing tool.
//
// The tool runs with the firmware directory as its working directory and
// with the standard streams of mflash attached, since flashing utilities
// report progress and may prompt on the terminal. Runs block until the
// tool exits and have no timeout: a tool waiting on hardware may take as
// long as it needs.
package runner

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/mflash/pkg/command"
	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner executes one built command line.
type Runner interface {
	Run(ctx context.Context, args []string, dir string) error
}

// ExecRunner runs commands as child processes
type ExecRunner struct {
	logger zerolog.Logger
	dryRun bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner attached to the process's own streams
func NewExecRunner(dryRun bool) *ExecRunner {
	return &ExecRunner{
		logger: logging.GetLogger("runner"),
		dryRun: dryRun,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// DryRun reports whether commands are only logged
func (r *ExecRunner) DryRun() bool {
	return r.dryRun
}

// Run spawns args[0] with args[1:] in dir and waits for it to exit.
// A tool that cannot be started fails with PROCESS_LAUNCH; a tool that
// exits non-zero fails with PROCESS_EXECUTION carrying the exit code.
func (r *ExecRunner) Run(ctx context.Context, args []string, dir string) error {
	if len(args) == 0 || args[0] == "" {
		return errors.New(errors.ErrInvalidInput, "run requires a command")
	}

	r.logger.Info().
		Str("command", args[0]).
		Strs("args", args[1:]).
		Str("workingDir", dir).
		Msg("Executing command")

	if r.dryRun {
		r.logger.Info().Str("commandLine", command.Render(args)).Msg("Dry run mode - command would be executed")
		return nil
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		r.logger.Error().
			Err(err).
			Str("command", args[0]).
			Msg("Command could not be started")
		return errors.Wrapf(err, errors.ErrProcessLaunch, "cannot start %s", args[0]).
			WithDetail("command", args[0]).
			WithDetail("workingDir", dir)
	}

	err := cmd.Wait()
	if err == nil {
		r.logger.Info().Str("command", args[0]).Msg("Command executed successfully")
		return nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		r.logger.Error().
			Str("command", args[0]).
			Strs("args", args[1:]).
			Int("exitCode", code).
			Msg("Command execution failed")
		return errors.Newf(errors.ErrProcessExecution, "%s exited with status %d", args[0], code).
			WithDetail("command", args[0]).
			WithDetail("exitCode", code)
	}

	return errors.Wrapf(err, errors.ErrProcessExecution, "waiting for %s failed", args[0]).
		WithDetail("command", args[0]).
		WithDetail("exitCode", -1)
}
