package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blerta-dev/farmakit/internal/classify"
	"github.com/blerta-dev/farmakit/internal/match"
	"github.com/blerta-dev/farmakit/internal/model"
)

// mockStorage is an in-memory Storage for engine tests.
type mockStorage struct {
	products    []model.ProductRecord
	results     map[string]classify.Result
	assignments map[string]string
	failOn      map[string]bool
}

func newMockStorage(products ...model.ProductRecord) *mockStorage {
	return &mockStorage{
		products:    products,
		results:     make(map[string]classify.Result),
		assignments: make(map[string]string),
		failOn:      make(map[string]bool),
	}
}

func (m *mockStorage) GetProducts(_ context.Context) ([]model.ProductRecord, error) {
	out := make([]model.ProductRecord, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *mockStorage) UpdateClassification(_ context.Context, productID string, result classify.Result) error {
	if m.failOn[productID] {
		return fmt.Errorf("simulated failure for %s", productID)
	}
	m.results[productID] = result
	return nil
}

func (m *mockStorage) UpdateImageAssignment(_ context.Context, productID, imageFilename string) error {
	if m.failOn[productID] {
		return fmt.Errorf("simulated failure for %s", productID)
	}
	m.assignments[productID] = imageFilename
	for i := range m.products {
		if m.products[i].ID == productID {
			m.products[i].ImageFilename = imageFilename
		}
	}
	return nil
}

func newTestEngine(t *testing.T, store Storage, minScore int) *Engine {
	t.Helper()
	classifier, err := classify.NewClassifier(classify.DefaultRules())
	require.NoError(t, err)

	eng, err := New(store, classifier, Config{MinScore: minScore})
	require.NoError(t, err)
	return eng
}

func TestNew(t *testing.T) {
	classifier, err := classify.NewClassifier(classify.DefaultRules())
	require.NoError(t, err)

	_, err = New(nil, classifier, Config{})
	assert.Error(t, err)

	_, err = New(newMockStorage(), nil, Config{})
	assert.Error(t, err)

	_, err = New(newMockStorage(), classifier, Config{})
	assert.NoError(t, err)
}

func TestClassifyAll(t *testing.T) {
	store := newMockStorage(
		model.ProductRecord{ID: "1", Name: "Baby Sun Cream SPF50"},
		model.ProductRecord{ID: "2", Name: "Paracetamol 500mg", Description: "analgesic tableta"},
		model.ProductRecord{ID: "3", Name: "Xyzzy Widget 42"},
	)
	eng := newTestEngine(t, store, 0)

	summary, err := eng.ClassifyAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Classified)
	assert.Equal(t, 1, summary.Fallback)
	assert.Equal(t, 0, summary.Failed)

	assert.Equal(t, "Mama dhe Bebat > Kujdesi ndaj Bebit > SPF", store.results["1"].Path)
	assert.Equal(t, "OTC", store.results["2"].Category)
	assert.True(t, store.results["3"].Fallback)
}

func TestClassifyAllEmptyCatalog(t *testing.T) {
	eng := newTestEngine(t, newMockStorage(), 0)

	summary, err := eng.ClassifyAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Classified)
}

func TestClassifyAllPersistFailureDoesNotAbort(t *testing.T) {
	store := newMockStorage(
		model.ProductRecord{ID: "1", Name: "Durex Classic"},
		model.ProductRecord{ID: "2", Name: "Vitamin C 1000mg"},
	)
	store.failOn["1"] = true
	eng := newTestEngine(t, store, 0)

	summary, err := eng.ClassifyAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Classified)
	assert.Equal(t, "Suplemente", store.results["2"].Category)
}

func TestMatchAll(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"comfort-zone-tranquillity-cream.jpg", "comfort-zone-sun-soul-milk.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	store := newMockStorage(
		model.ProductRecord{ID: "1", Name: "Comfort Zone Tranquillity Cream"},
		model.ProductRecord{ID: "2", Name: "Comfort Zone Tranquillity Lotion"},
		model.ProductRecord{ID: "3", Name: "Comfort Zone Sun Soul Milk"},
	)
	eng := newTestEngine(t, store, match.DefaultMinScore)

	summary, err := eng.MatchAll(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Images)
	assert.Equal(t, 2, summary.Matched)
	assert.Equal(t, 1, summary.Unmatched)

	assert.Equal(t, "comfort-zone-tranquillity-cream.jpg", store.assignments["1"])
	assert.Equal(t, "comfort-zone-sun-soul-milk.jpg", store.assignments["3"])
	_, matched := store.assignments["2"]
	assert.False(t, matched)
}

func TestMatchAllMissingDirectory(t *testing.T) {
	store := newMockStorage(
		model.ProductRecord{ID: "1", Name: "Comfort Zone Tranquillity Cream"},
	)
	eng := newTestEngine(t, store, match.DefaultMinScore)

	summary, err := eng.MatchAll(context.Background(), []string{"/nonexistent/farmakit-images"})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Images)
	assert.Equal(t, 0, summary.Matched)
	assert.Equal(t, 1, summary.Unmatched)
}

func TestRepairShared(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"placeholder.jpg", "comfort-zone-sun-soul-milk.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	store := newMockStorage(
		model.ProductRecord{ID: "1", Name: "Comfort Zone Tranquillity Cream", ImageFilename: "placeholder.jpg"},
		model.ProductRecord{ID: "2", Name: "Comfort Zone Sun Soul Milk", ImageFilename: "placeholder.jpg"},
	)
	eng := newTestEngine(t, store, match.DefaultMinScore)

	summary, err := eng.RepairShared(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Fixed)
	assert.Equal(t, 0, summary.Unfixed)
	assert.Equal(t, "comfort-zone-sun-soul-milk.jpg", store.assignments["2"])
	_, reassigned := store.assignments["1"]
	assert.False(t, reassigned, "the first sharer keeps its image")
}

func TestClassifyAllCanceledContext(t *testing.T) {
	store := newMockStorage(model.ProductRecord{ID: "1", Name: "x"})
	eng := newTestEngine(t, store, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.ClassifyAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
