package mflash

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run flashing documents through mfastboot"
	MsgShowShort       = "Print the parsed flashing document"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDebugHeader   = "Parsed flashing document (%s):\n"
	MsgConfigSource  = "# loaded from %s\n"
	MsgVersionFormat = "mflash %s (commit %s, built %s)\n"

	// Error messages
	MsgErrOutputFormat = "invalid output format %q"

	// Flag descriptions
	MsgFlagVerbose          = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFlash            = "Use the flash document (flashfile.xml) instead of the service document"
	MsgFlagFlashingFilename = "Flashing document to run, relative to FIRMWARE_DIR"
	MsgFlagTest             = "Test mode: print the commands without running the flashing tool"
	MsgFlagDebug            = "Print the parsed flashing document before running it"
	MsgFlagNoMD5            = "Skip digest verification of step files"
	MsgFlagTool             = "Flashing utility to invoke (default from configuration)"
	MsgFlagFormat           = "Progress format: auto, term, text or json"
	MsgFlagShowOutput       = "Output format: json or yaml"
	MsgFlagConfigDefaults   = "Print the commented default configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
