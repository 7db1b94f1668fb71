package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/config"
	"github.com/blerta-dev/farmakit/internal/model"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog.csv>",
		Short: "Import a product catalog from CSV",
		Long: `Import catalog rows from a CSV file with a header line. Recognized
columns: id, name, brand, description. Rows are upserted by id; existing
classification and image columns are preserved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			products, err := readCatalogCSV(config.ExpandPath(args[0]))
			if err != nil {
				return err
			}
			if len(products) == 0 {
				return common.NewUserError("nothing to import", common.ErrCatalogEmpty)
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveProducts(ctx, products); err != nil {
				return common.NewUserError("failed to import catalog", err)
			}

			cmd.Printf("Imported %d products\n", len(products))
			return nil
		},
	}
}

func readCatalogCSV(path string) ([]model.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError("failed to open catalog file", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, common.NewUserError("catalog file is missing an id column", common.ErrInvalidConfig)
	}
	if _, ok := cols["name"]; !ok {
		return nil, common.NewUserError("catalog file is missing a name column", common.ErrInvalidConfig)
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var products []model.ProductRecord
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		p := model.ProductRecord{
			ID:          field(record, "id"),
			Name:        field(record, "name"),
			Brand:       field(record, "brand"),
			Description: field(record, "description"),
		}
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("CSV line %d: id and name are required", line)
		}
		products = append(products, p)
	}

	return products, nil
}
