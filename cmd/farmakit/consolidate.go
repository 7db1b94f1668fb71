package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blerta-dev/farmakit/internal/cli"
	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/config"
	"github.com/blerta-dev/farmakit/internal/consolidate"
)

func consolidateCmd() *cobra.Command {
	var (
		from []string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge legacy image directories into the canonical directory",
		Long: `Copy images from the source directories into the canonical directory,
skipping files whose bytes already exist there. Identity is the content
hash, so re-running after a completed consolidation copies nothing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sourceDirs, err := imageDirs(from)
			if err != nil {
				return err
			}

			canonical := to
			if canonical == "" {
				canonical = viper.GetString("images.canonical_dir")
			}
			if canonical == "" {
				return common.NewUserError("no canonical directory configured",
					common.ErrMissingConfig)
			}

			report, err := consolidate.Consolidate(cmd.Context(), sourceDirs, config.ExpandPath(canonical))
			if err != nil {
				return common.NewUserError("consolidation failed", err)
			}

			cmd.Println(cli.RenderConsolidateReport(report))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&from, "from", nil, "source directories in processing order (default: images.dirs)")
	cmd.Flags().StringVar(&to, "to", "", "canonical directory (default: images.canonical_dir)")
	return cmd
}
