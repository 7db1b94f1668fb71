package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blerta-dev/farmakit/internal/cli"
	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/engine"
)

func matchCmd() *cobra.Command {
	var (
		dirs      []string
		score     int
		strict    bool
		rulesPath string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Assign inventory images to products lacking one",
		Long: `Scan the image directories and assign the best-matching unused image to
every product without a primary image. Products with no image above the
threshold stay unmatched and are reported in the summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			scanDirs, err := imageDirs(dirs)
			if err != nil {
				return err
			}

			classifier, err := buildClassifier(rulesPath)
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
				MinScore:       minScore(score, strict),
			})
			if err != nil {
				return err
			}

			summary, err := eng.MatchAll(ctx, scanDirs)
			if err != nil {
				return common.NewUserError("matching run failed", err)
			}

			cmd.Println(cli.RenderMatchSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dirs", nil, "image directories to scan (default: images.dirs from config)")
	cmd.Flags().IntVar(&score, "min-score", 0, "acceptance threshold override")
	cmd.Flags().BoolVar(&strict, "strict", false, "use the strict threshold for brand-sensitive product lines")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML rule table overriding the built-in rules")
	return cmd
}
