package mflash

import (
	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/flashing"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "show [FIRMWARE_DIR]",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := flashing.ParseRenderFormat(output)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrOutputFormat, output)
			}

			_, document, _, err := resolveDocument(cmd, opts, firmwareDirArg(args))
			if err != nil {
				return err
			}

			doc, err := flashing.ParseFile(document)
			if err != nil {
				return err
			}
			return flashing.Render(cmd.OutOrStdout(), doc, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(flashing.RenderYAML), MsgFlagShowOutput)

	return cmd
}
