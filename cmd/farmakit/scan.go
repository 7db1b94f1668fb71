package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/blerta-dev/farmakit/internal/cli"
	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/inventory"
)

func scanCmd() *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Audit the image inventory",
		Long:  `List how many images each directory holds and which files share identical bytes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scanDirs, err := imageDirs(dirs)
			if err != nil {
				return err
			}

			assets, err := inventory.Scan(cmd.Context(), scanDirs)
			if err != nil {
				return common.NewUserError("inventory scan failed", err)
			}

			cmd.Println(cli.TitleStyle.Render("Inventory scan"))
			cmd.Printf("  %d images across %d directories\n", len(assets), len(scanDirs))

			groups := inventory.DuplicateGroups(assets)
			if len(groups) == 0 {
				cmd.Println(cli.SuccessStyle.Render("  no duplicate images"))
				return nil
			}

			cmd.Println(cli.WarningStyle.Render("  duplicate groups:"))
			hashes := make([]string, 0, len(groups))
			for hash := range groups {
				hashes = append(hashes, hash)
			}
			sort.Strings(hashes)

			for _, hash := range hashes {
				cmd.Printf("  %s\n", cli.SubtleStyle.Render(hash[:12]))
				for _, a := range groups[hash] {
					cmd.Printf("    %s\n", a.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dirs", nil, "image directories to scan (default: images.dirs)")
	return cmd
}
