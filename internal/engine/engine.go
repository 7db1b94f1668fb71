// Package engine drives the batch pipeline: it loads the catalog from
// storage, runs the classifier and the image matcher over it, and writes
// the results back.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/blerta-dev/farmakit/internal/classify"
	"github.com/blerta-dev/farmakit/internal/consolidate"
	"github.com/blerta-dev/farmakit/internal/inventory"
	"github.com/blerta-dev/farmakit/internal/match"
	"github.com/blerta-dev/farmakit/internal/model"
)

// Storage is the subset of catalog persistence the engine needs.
type Storage interface {
	GetProducts(ctx context.Context) ([]model.ProductRecord, error)
	UpdateClassification(ctx context.Context, productID string, result classify.Result) error
	UpdateImageAssignment(ctx context.Context, productID, imageFilename string) error
}

// Config holds the tunable knobs of a pipeline run.
type Config struct {
	// ProgressWriter receives progress bars; nil disables them.
	ProgressWriter io.Writer
	// MinScore is the image-match acceptance threshold.
	MinScore int
}

// Engine orchestrates one batch run over the catalog.
type Engine struct {
	store      Storage
	classifier *classify.Classifier
	config     Config
}

// New creates an engine. The classifier is required; construct it from
// classify.DefaultRules or an external rule table.
func New(store Storage, classifier *classify.Classifier, config Config) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	return &Engine{store: store, classifier: classifier, config: config}, nil
}

// ClassifySummary reports one classification pass. Fallback counts the
// products that got the default category and need manual review.
type ClassifySummary struct {
	Total      int
	Classified int
	Fallback   int
	Failed     int
}

// ClassifyAll classifies every product in the catalog and persists the
// results. A failure to persist one product is logged and counted, never
// fatal to its siblings. An empty catalog yields zero counts.
func (e *Engine) ClassifyAll(ctx context.Context) (*ClassifySummary, error) {
	products, err := e.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	summary := &ClassifySummary{Total: len(products)}
	bar := e.newProgressBar(len(products), "Classifying products...")

	for i := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result := e.classifier.Classify(products[i].Name, products[i].Description)
		if result.Fallback {
			summary.Fallback++
			slog.Info("Product fell back to default category",
				"product", products[i].ID,
				"name", products[i].Name)
		}

		if err := e.store.UpdateClassification(ctx, products[i].ID, result); err != nil {
			summary.Failed++
			slog.Warn("Failed to persist classification",
				"product", products[i].ID,
				"error", err)
		} else {
			summary.Classified++
		}

		e.advance(bar)
	}

	return summary, nil
}

// MatchSummary reports one image-matching pass. Total counts the products
// that entered the pass without an image.
type MatchSummary struct {
	Total     int
	Matched   int
	Unmatched int
	Failed    int
	Images    int
}

// MatchAll scans the image directories and assigns the best unused image
// to every product lacking one, persisting accepted assignments. Products
// with no image above the threshold stay unmatched and are only counted.
func (e *Engine) MatchAll(ctx context.Context, imageDirs []string) (*MatchSummary, error) {
	products, err := e.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	images, err := inventory.Scan(ctx, imageDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to scan image directories: %w", err)
	}

	unassigned := 0
	for i := range products {
		if !products[i].HasImage() {
			unassigned++
		}
	}

	summary := &MatchSummary{Total: unassigned, Images: len(images)}
	bar := e.newProgressBar(unassigned, "Matching images...")

	matcher := match.NewMatcher(e.config.MinScore)
	assignments, err := matcher.MatchUnassigned(ctx, products, images)
	if err != nil {
		return nil, err
	}

	for _, a := range assignments {
		if err := e.store.UpdateImageAssignment(ctx, a.ProductID, a.ImageFilename); err != nil {
			summary.Failed++
			slog.Warn("Failed to persist image assignment",
				"product", a.ProductID,
				"error", err)
		} else {
			summary.Matched++
		}
		e.advance(bar)
	}

	summary.Unmatched = summary.Total - summary.Matched - summary.Failed
	return summary, nil
}

// RepairSummary reports one shared-assignment repair pass.
type RepairSummary struct {
	Shared  int
	Fixed   int
	Unfixed int
	Failed  int
}

// RepairShared reassigns products that share a primary image so that each
// image backs at most one product, persisting the reassignments. Products
// the pool cannot cover are reported, not fixed.
func (e *Engine) RepairShared(ctx context.Context, imageDirs []string) (*RepairSummary, error) {
	products, err := e.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	images, err := inventory.Scan(ctx, imageDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to scan image directories: %w", err)
	}

	assignments, report, err := consolidate.RepairShared(ctx, products, images, e.config.MinScore)
	if err != nil {
		return nil, err
	}

	summary := &RepairSummary{
		Shared:  report.Fixed + report.Unfixed,
		Unfixed: report.Unfixed,
	}

	for _, a := range assignments {
		if err := e.store.UpdateImageAssignment(ctx, a.ProductID, a.ImageFilename); err != nil {
			summary.Failed++
			slog.Warn("Failed to persist repaired assignment",
				"product", a.ProductID,
				"error", err)
		} else {
			summary.Fixed++
		}
	}

	return summary, nil
}

func (e *Engine) newProgressBar(total int, description string) *progressbar.ProgressBar {
	if e.config.ProgressWriter == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(e.config.ProgressWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
	)
}

func (e *Engine) advance(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	if err := bar.Add(1); err != nil {
		slog.Debug("Failed to advance progress bar", "error", err)
	}
}
