package consolidate

import (
	"context"
	"log/slog"
	"sort"

	"github.com/blerta-dev/farmakit/internal/match"
	"github.com/blerta-dev/farmakit/internal/model"
)

// RepairReport summarizes a shared-assignment repair pass.
type RepairReport struct {
	Fixed   int
	Unfixed int
}

// RepairShared finds every image assigned as primary to more than one
// product and reassigns all but one sharer. The sharer with the lowest
// product ID keeps the image; each other sharer is rematched against the
// unused pool, falling back to any still-unused image when nothing clears
// the threshold, so that afterwards no two products share a primary image.
// When the pool is exhausted the defect is reported, not fixed.
//
// The returned assignments are the reassignments only; callers persist
// them. The products slice is not mutated.
func RepairShared(ctx context.Context, products []model.ProductRecord, images []model.ImageAsset, minScore int) ([]model.Assignment, *RepairReport, error) {
	report := &RepairReport{}

	sharers := make(map[string][]int)
	for i := range products {
		if products[i].HasImage() {
			sharers[products[i].ImageFilename] = append(sharers[products[i].ImageFilename], i)
		}
	}

	// Deterministic order: shared filenames sorted, sharers by product ID.
	var shared []string
	for filename, idxs := range sharers {
		if len(idxs) > 1 {
			shared = append(shared, filename)
		}
	}
	sort.Strings(shared)

	matcher := match.NewMatcher(minScore)
	for i := range products {
		matcher.MarkUsed(products[i].ImageFilename)
	}

	var assignments []model.Assignment
	for _, filename := range shared {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		idxs := sharers[filename]
		sort.Slice(idxs, func(a, b int) bool {
			return products[idxs[a]].ID < products[idxs[b]].ID
		})

		// First sharer keeps the image; the rest get rematched.
		for _, idx := range idxs[1:] {
			p := products[idx]
			if assignment, ok := matcher.MatchOne(&p, images); ok {
				assignments = append(assignments, assignment)
				report.Fixed++
				continue
			}

			if fallback, ok := firstUnused(matcher, images, p.ID); ok {
				assignments = append(assignments, fallback)
				report.Fixed++
				slog.Info("Assigned fallback image to shared-image product",
					"product", p.ID,
					"image", fallback.ImageFilename)
				continue
			}

			report.Unfixed++
			slog.Warn("Image pool exhausted, product keeps shared image",
				"product", p.ID,
				"image", filename)
		}
	}

	return assignments, report, nil
}

// firstUnused claims the first image in scan order that no product holds.
func firstUnused(matcher *match.Matcher, images []model.ImageAsset, productID string) (model.Assignment, bool) {
	for i := range images {
		if matcher.Claim(images[i].Filename) {
			return model.Assignment{
				ProductID:     productID,
				ImageFilename: images[i].Filename,
				Fallback:      true,
			}, true
		}
	}
	return model.Assignment{}, false
}
