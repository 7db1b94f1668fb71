package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blerta-dev/farmakit/internal/classify"
	"github.com/blerta-dev/farmakit/internal/model"
)

// SaveProducts inserts or replaces catalog rows in one transaction.
// Classification and image columns are preserved on replace so a re-import
// does not wipe earlier pipeline output.
func (s *SQLiteStore) SaveProducts(ctx context.Context, products []model.ProductRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, brand, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			description = excluded.description
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range products {
		p := &products[i]
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("product %d: id and name are required", i)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Brand, p.Description); err != nil {
			return fmt.Errorf("failed to save product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetProducts returns the whole catalog in insertion order. The matcher
// depends on this order being stable across runs.
func (s *SQLiteStore) GetProducts(ctx context.Context) ([]model.ProductRecord, error) {
	return s.queryProducts(ctx, `
		SELECT id, name, brand, description, category, subcategory,
		       category_path, confidence, reason, image_filename
		FROM products
		ORDER BY rowid
	`)
}

// GetUnclassified returns products that have no category yet, in
// insertion order.
func (s *SQLiteStore) GetUnclassified(ctx context.Context) ([]model.ProductRecord, error) {
	return s.queryProducts(ctx, `
		SELECT id, name, brand, description, category, subcategory,
		       category_path, confidence, reason, image_filename
		FROM products
		WHERE category IS NULL OR category = ''
		ORDER BY rowid
	`)
}

func (s *SQLiteStore) queryProducts(ctx context.Context, query string, args ...any) ([]model.ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []model.ProductRecord
	for rows.Next() {
		var p model.ProductRecord
		var brand, description, category, subcategory, path, reason, image sql.NullString
		var confidence sql.NullFloat64

		if err := rows.Scan(&p.ID, &p.Name, &brand, &description, &category,
			&subcategory, &path, &confidence, &reason, &image); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		p.Brand = brand.String
		p.Description = description.String
		p.Category = category.String
		p.Subcategory = subcategory.String
		p.CategoryPath = path.String
		p.Confidence = confidence.Float64
		p.Reason = reason.String
		p.ImageFilename = image.String
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// UpdateClassification writes a classification result back to the catalog.
func (s *SQLiteStore) UpdateClassification(ctx context.Context, productID string, result classify.Result) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET category = ?, subcategory = ?, category_path = ?, confidence = ?, reason = ?
		WHERE id = ?
	`, result.Category, result.Subcategory, result.Path, result.Confidence, result.Reason, productID)
	if err != nil {
		return fmt.Errorf("failed to update classification for %s: %w", productID, err)
	}
	return requireRow(res, productID)
}

// UpdateImageAssignment sets (or clears, with an empty filename) a
// product's primary image.
func (s *SQLiteStore) UpdateImageAssignment(ctx context.Context, productID, imageFilename string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET image_filename = ? WHERE id = ?
	`, imageFilename, productID)
	if err != nil {
		return fmt.Errorf("failed to update image assignment for %s: %w", productID, err)
	}
	return requireRow(res, productID)
}

// GetSharedAssignments returns images assigned as primary to more than one
// product, mapped to the sharing product IDs ordered by ID.
func (s *SQLiteStore) GetSharedAssignments(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT image_filename, id
		FROM products
		WHERE image_filename IS NOT NULL AND image_filename != ''
		  AND image_filename IN (
			SELECT image_filename FROM products
			WHERE image_filename IS NOT NULL AND image_filename != ''
			GROUP BY image_filename HAVING COUNT(*) > 1
		  )
		ORDER BY image_filename, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	shared := make(map[string][]string)
	for rows.Next() {
		var filename, id string
		if err := rows.Scan(&filename, &id); err != nil {
			return nil, fmt.Errorf("failed to scan shared assignment: %w", err)
		}
		shared[filename] = append(shared[filename], id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shared assignments: %w", err)
	}
	return shared, nil
}

// CountProducts returns total catalog size.
func (s *SQLiteStore) CountProducts(ctx context.Context) (int, error) {
	return s.countWhere(ctx, `SELECT COUNT(*) FROM products`)
}

// CountWithoutImage returns how many products lack a primary image.
func (s *SQLiteStore) CountWithoutImage(ctx context.Context) (int, error) {
	return s.countWhere(ctx, `
		SELECT COUNT(*) FROM products
		WHERE image_filename IS NULL OR image_filename = ''
	`)
}

func (s *SQLiteStore) countWhere(ctx context.Context, query string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func requireRow(res sql.Result, productID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
	}
	return nil
}
