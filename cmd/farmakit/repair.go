package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blerta-dev/farmakit/internal/cli"
	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/engine"
)

func repairCmd() *cobra.Command {
	var (
		dirs  []string
		score int
	)

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Reassign products that share a primary image",
		Long: `Find images assigned as primary to more than one product and rematch
all but the first sharer against the unused image pool, falling back to
any unused image. Products the pool cannot cover are reported, not fixed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			scanDirs, err := imageDirs(dirs)
			if err != nil {
				return err
			}

			classifier, err := buildClassifier("")
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, err := engine.New(store, classifier, engine.Config{
				ProgressWriter: os.Stderr,
				MinScore:       minScore(score, false),
			})
			if err != nil {
				return err
			}

			summary, err := eng.RepairShared(ctx, scanDirs)
			if err != nil {
				return common.NewUserError("repair run failed", err)
			}

			cmd.Println(cli.RenderRepairSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dirs", nil, "image directories to scan (default: images.dirs)")
	cmd.Flags().IntVar(&score, "min-score", 0, "acceptance threshold override")
	return cmd
}
