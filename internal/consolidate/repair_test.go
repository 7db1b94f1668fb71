package consolidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blerta-dev/farmakit/internal/match"
	"github.com/blerta-dev/farmakit/internal/model"
)

func asset(filename string) model.ImageAsset {
	return model.ImageAsset{Filename: filename, Path: "/images/" + filename, Hash: "hash-" + filename}
}

func TestRepairSharedRematchesSecondSharer(t *testing.T) {
	products := []model.ProductRecord{
		{ID: "1", Name: "Comfort Zone Tranquillity Cream", ImageFilename: "placeholder.jpg"},
		{ID: "2", Name: "Comfort Zone Sun Soul Milk", ImageFilename: "placeholder.jpg"},
	}
	images := []model.ImageAsset{
		asset("placeholder.jpg"),
		asset("comfort-zone-sun-soul-milk.jpg"),
	}

	assignments, report, err := RepairShared(context.Background(), products, images, match.DefaultMinScore)
	require.NoError(t, err)

	// Product 1 (lowest ID) keeps the placeholder; product 2 is rematched
	// to its own image.
	require.Len(t, assignments, 1)
	assert.Equal(t, "2", assignments[0].ProductID)
	assert.Equal(t, "comfort-zone-sun-soul-milk.jpg", assignments[0].ImageFilename)
	assert.False(t, assignments[0].Fallback)
	assert.Equal(t, 1, report.Fixed)
	assert.Equal(t, 0, report.Unfixed)
}

func TestRepairSharedFallsBackToUnusedImage(t *testing.T) {
	products := []model.ProductRecord{
		{ID: "1", Name: "Product One", ImageFilename: "shared.jpg"},
		{ID: "2", Name: "Product Two", ImageFilename: "shared.jpg"},
	}
	images := []model.ImageAsset{
		asset("shared.jpg"),
		asset("unrelated-picture.jpg"),
	}

	assignments, report, err := RepairShared(context.Background(), products, images, match.DefaultMinScore)
	require.NoError(t, err)

	// No similarity match exists, but an unused image does: product 2 is
	// moved onto it rather than left sharing.
	require.Len(t, assignments, 1)
	assert.Equal(t, "2", assignments[0].ProductID)
	assert.Equal(t, "unrelated-picture.jpg", assignments[0].ImageFilename)
	assert.True(t, assignments[0].Fallback)
	assert.Equal(t, 1, report.Fixed)
}

func TestRepairSharedPoolExhausted(t *testing.T) {
	products := []model.ProductRecord{
		{ID: "1", Name: "Product One", ImageFilename: "shared.jpg"},
		{ID: "2", Name: "Product Two", ImageFilename: "shared.jpg"},
	}
	images := []model.ImageAsset{
		asset("shared.jpg"),
	}

	assignments, report, err := RepairShared(context.Background(), products, images, match.DefaultMinScore)
	require.NoError(t, err)

	// Nothing left to assign: the defect is reported, not silently fixed.
	assert.Empty(t, assignments)
	assert.Equal(t, 0, report.Fixed)
	assert.Equal(t, 1, report.Unfixed)
}

func TestRepairSharedNoSharedImages(t *testing.T) {
	products := []model.ProductRecord{
		{ID: "1", Name: "Product One", ImageFilename: "one.jpg"},
		{ID: "2", Name: "Product Two", ImageFilename: "two.jpg"},
		{ID: "3", Name: "Product Three"},
	}
	images := []model.ImageAsset{
		asset("one.jpg"),
		asset("two.jpg"),
	}

	assignments, report, err := RepairShared(context.Background(), products, images, match.DefaultMinScore)
	require.NoError(t, err)
	assert.Empty(t, assignments)
	assert.Equal(t, 0, report.Fixed)
	assert.Equal(t, 0, report.Unfixed)
}

func TestRepairSharedDeterministicKeeper(t *testing.T) {
	// Sharers listed out of ID order: the lowest product ID still keeps
	// the image.
	products := []model.ProductRecord{
		{ID: "9", Name: "Comfort Zone Sun Soul Milk", ImageFilename: "shared.jpg"},
		{ID: "2", Name: "Product Keeper", ImageFilename: "shared.jpg"},
	}
	images := []model.ImageAsset{
		asset("shared.jpg"),
		asset("comfort-zone-sun-soul-milk.jpg"),
	}

	assignments, report, err := RepairShared(context.Background(), products, images, match.DefaultMinScore)
	require.NoError(t, err)

	require.Len(t, assignments, 1)
	assert.Equal(t, "9", assignments[0].ProductID)
	assert.Equal(t, "comfort-zone-sun-soul-milk.jpg", assignments[0].ImageFilename)
	assert.Equal(t, 1, report.Fixed)
}
