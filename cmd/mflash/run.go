package mflash

import (
	"fmt"

	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/flashing"
	"github.com/arthur-debert/mflash/pkg/interpreter"
	"github.com/arthur-debert/mflash/pkg/logging"
	"github.com/arthur-debert/mflash/pkg/runner"
	"github.com/arthur-debert/mflash/pkg/ui"
	"github.com/spf13/cobra"
)

// runFlash parses the selected document and runs it step by step
func runFlash(cmd *cobra.Command, opts *options, firmwareDir string) error {
	logger := logging.GetLogger("cli")
	defer logging.LogOperationStart(logger, "flash")()

	dir, document, cfg, err := resolveDocument(cmd, opts, firmwareDir)
	if err != nil {
		return err
	}

	doc, err := flashing.ParseFile(document)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.debug {
		fmt.Fprintf(out, MsgDebugHeader, document)
		if err := flashing.Render(out, doc, flashing.RenderYAML); err != nil {
			return err
		}
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, MsgErrOutputFormat, cfg.Output.Format)
	}
	reporter, err := ui.NewReporter(format, out)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create reporter")
	}

	r := runner.NewExecRunner(opts.dryRun)
	r.Stdout = out
	r.Stderr = cmd.ErrOrStderr()

	interp, err := interpreter.New(dir, interpreter.Options{
		Tool:               cfg.Tool,
		SkipIntegrityCheck: !cfg.Integrity.Enabled,
		DryRun:             opts.dryRun,
		Verbose:            opts.verbosity > 0,
		Algorithm:          cfg.Integrity.Algorithm,
		Runner:             r,
		Reporter:           reporter,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("document", document).
		Str("tool", cfg.Tool).
		Bool("dryRun", opts.dryRun).
		Msg("Running flashing document")

	_, err = interp.Run(cmd.Context(), doc)
	return err
}
