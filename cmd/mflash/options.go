package mflash

import (
	"github.com/arthur-debert/mflash/pkg/config"
	"github.com/arthur-debert/mflash/pkg/logging"
	"github.com/arthur-debert/mflash/pkg/paths"
	"github.com/spf13/cobra"
)

// options holds the flag values shared by the root command and its
// subcommands
type options struct {
	verbosity        int
	flash            bool
	flashingFilename string
	tool             string
	noMD5            bool
	dryRun           bool
	debug            bool
	format           string
}

// firmwareDirArg returns the FIRMWARE_DIR argument, defaulting to "."
func firmwareDirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// loadConfig loads the configuration for dir and applies the flags the
// user actually set on cmd
func loadConfig(cmd *cobra.Command, opts *options, dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("tool") {
		overrides["tool"] = opts.tool
	}
	if flags.Changed("no-md5") && opts.noMD5 {
		overrides["integrity.enabled"] = false
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		overrides["output.format"] = opts.format
	}

	if len(overrides) > 0 {
		logger := logging.GetLogger("cli")
		logger.Debug().Interface("overrides", overrides).Msg("Applying flag overrides")
		if cfg, err = config.Override(cfg, overrides); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// documentName picks the flashing document: -f wins, then --flash, then
// the configured default
func documentName(cfg *config.Config, opts *options) string {
	switch {
	case opts.flashingFilename != "":
		return opts.flashingFilename
	case opts.flash:
		return cfg.FlashDocument
	default:
		return cfg.Document
	}
}

// resolveDocument guards the firmware directory, loads the configuration
// and resolves the flashing document inside it
func resolveDocument(cmd *cobra.Command, opts *options, firmwareDir string) (dir, document string, cfg *config.Config, err error) {
	dir, err = paths.EnsureDirectory(firmwareDir)
	if err != nil {
		return "", "", nil, err
	}

	cfg, err = loadConfig(cmd, opts, dir)
	if err != nil {
		return "", "", nil, err
	}

	document, err = paths.ResolveFile(dir, documentName(cfg, opts))
	if err != nil {
		return "", "", nil, err
	}
	return dir, document, cfg, nil
}
