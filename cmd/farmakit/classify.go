package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blerta-dev/farmakit/internal/cli"
	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/engine"
)

func classifyCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify every catalog product into the category taxonomy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			classifier, err := buildClassifier(rulesPath)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, err := engine.New(store, classifier, engine.Config{ProgressWriter: os.Stderr})
			if err != nil {
				return err
			}

			summary, err := eng.ClassifyAll(ctx)
			if err != nil {
				return common.NewUserError("classification run failed", err)
			}

			cmd.Println(cli.RenderClassifySummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML rule table overriding the built-in rules")
	return cmd
}
