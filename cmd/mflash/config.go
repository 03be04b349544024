package mflash

import (
	"fmt"

	"github.com/arthur-debert/mflash/pkg/config"
	"github.com/arthur-debert/mflash/pkg/paths"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config [FIRMWARE_DIR]",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				fmt.Fprintln(out, config.GenerateConfigContent())
				return nil
			}

			dir, err := paths.EnsureDirectory(firmwareDirArg(args))
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts, dir)
			if err != nil {
				return err
			}

			content, err := config.ToTOML(cfg)
			if err != nil {
				return err
			}
			if cfg.Source != "" {
				fmt.Fprintf(out, MsgConfigSource, cfg.Source)
			}
			_, err = out.Write(content)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagConfigDefaults)

	return cmd
}
