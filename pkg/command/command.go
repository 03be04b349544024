// Package command turns a flashing step into the argument list of the
// external flashing tool.
package command

import (
	"strings"

	"github.com/arthur-debert/mflash/pkg/flashing"
)

// DefaultTool is the flashing utility invoked when none is configured.
const DefaultTool = "mfastboot"

// Build returns [tool, operation, partition?, resolvedFile?, var?].
// resolvedFile is the guarded absolute path of step.Filename, or empty when
// the step has no file. Tokens are discrete arguments, never a shell string.
func Build(tool string, step flashing.Step, resolvedFile string) []string {
	args := []string{tool, step.Operation}
	if step.Partition != "" {
		args = append(args, step.Partition)
	}
	if resolvedFile != "" {
		args = append(args, resolvedFile)
	}
	if step.Var != "" {
		args = append(args, step.Var)
	}
	return args
}

// Render formats args for display only: each token double quoted,
// separated by spaces.
func Render(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
	}
	return strings.Join(quoted, " ")
}
