package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blerta-dev/farmakit/internal/classify"
	"github.com/blerta-dev/farmakit/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func sampleProducts() []model.ProductRecord {
	return []model.ProductRecord{
		{ID: "p1", Name: "Comfort Zone Tranquillity Cream", Brand: "Comfort Zone"},
		{ID: "p2", Name: "Paracetamol 500mg", Description: "tableta kunder dhimbjes"},
		{ID: "p3", Name: "Baby Sun Cream SPF50"},
	}
}

func TestSaveAndGetProducts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, sampleProducts()))

	products, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	// Insertion order is preserved.
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, "p3", products[2].ID)
	assert.Equal(t, "Comfort Zone", products[0].Brand)
	assert.Equal(t, "tableta kunder dhimbjes", products[1].Description)
}

func TestSaveProductsValidation(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveProducts(context.Background(), []model.ProductRecord{{ID: "", Name: "x"}})
	assert.Error(t, err)
}

func TestSaveProductsUpsertPreservesClassification(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, sampleProducts()))
	require.NoError(t, store.UpdateClassification(ctx, "p1", classify.Result{
		Category:    "Dermokozmetike",
		Subcategory: "Trupi",
		Path:        "Dermokozmetike > Trupi",
		Confidence:  0.8,
		Reason:      "body care keywords",
	}))

	// Re-import the same row with a changed name.
	updated := sampleProducts()
	updated[0].Name = "Comfort Zone Tranquillity Cream 200ml"
	require.NoError(t, store.SaveProducts(ctx, updated))

	products, err := store.GetProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Comfort Zone Tranquillity Cream 200ml", products[0].Name)
	assert.Equal(t, "Dermokozmetike", products[0].Category)
	assert.InDelta(t, 0.8, products[0].Confidence, 1e-9)
}

func TestGetUnclassified(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, sampleProducts()))
	require.NoError(t, store.UpdateClassification(ctx, "p2", classify.Result{
		Category: "OTC", Path: "OTC", Confidence: 0.85, Reason: "drug keywords",
	}))

	unclassified, err := store.GetUnclassified(ctx)
	require.NoError(t, err)
	require.Len(t, unclassified, 2)
	assert.Equal(t, "p1", unclassified[0].ID)
	assert.Equal(t, "p3", unclassified[1].ID)
}

func TestUpdateClassificationUnknownProduct(t *testing.T) {
	store := newTestStore(t)
	err := store.UpdateClassification(context.Background(), "missing", classify.Result{Category: "OTC"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateImageAssignment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, sampleProducts()))
	require.NoError(t, store.UpdateImageAssignment(ctx, "p1", "cream.jpg"))

	products, err := store.GetProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cream.jpg", products[0].ImageFilename)
	assert.Empty(t, products[1].ImageFilename)

	count, err := store.CountWithoutImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGetSharedAssignments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, sampleProducts()))
	require.NoError(t, store.UpdateImageAssignment(ctx, "p1", "shared.jpg"))
	require.NoError(t, store.UpdateImageAssignment(ctx, "p2", "shared.jpg"))
	require.NoError(t, store.UpdateImageAssignment(ctx, "p3", "own.jpg"))

	shared, err := store.GetSharedAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, []string{"p1", "p2"}, shared["shared.jpg"])
}

func TestCountProducts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "empty catalog counts zero")

	require.NoError(t, store.SaveProducts(ctx, sampleProducts()))
	count, err = store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMigrateIdempotent(t *testing.T) {
	store := newTestStore(t)
	// newTestStore already migrated once.
	assert.NoError(t, store.Migrate(context.Background()))
}
