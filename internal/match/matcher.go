// Package match assigns inventory images to catalog products by fuzzy
// name similarity.
package match

import (
	"context"
	"log/slog"

	"github.com/blerta-dev/farmakit/internal/model"
	"github.com/blerta-dev/farmakit/internal/normalize"
	"github.com/blerta-dev/farmakit/internal/similarity"
)

// Score constants. ExactScore is granted when the normalized image
// basename equals the normalized product name. The thresholds were tuned
// empirically against the production catalog; there is no derivation
// behind them, and a different catalog may need different values.
const (
	ExactScore = 1000

	// DefaultMinScore accepts a match of three overlapping tokens, or two
	// plus a brand hit.
	DefaultMinScore = 150

	// StrictMinScore is for product lines where loose matches caused
	// visible mix-ups; it demands a brand hit on top of broad overlap.
	StrictMinScore = 300

	// nearExactRatio and ratioScale rescue heavily abbreviated filenames:
	// when no token overlaps at all but the whole-string similarity is
	// high, the ratio is scaled into the token-score range.
	nearExactRatio = 0.85
	ratioScale     = 200
)

// Matcher assigns images to products for one batch run. The used-image set
// lives on the Matcher rather than in package state, so separate runs and
// tests never leak assignments into each other.
type Matcher struct {
	used     map[string]bool
	minScore int
}

// NewMatcher creates a matcher with the given acceptance threshold.
// Non-positive thresholds fall back to DefaultMinScore.
func NewMatcher(minScore int) *Matcher {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Matcher{
		used:     make(map[string]bool),
		minScore: minScore,
	}
}

// MarkUsed records images as already assigned, excluding them from
// subsequent matching. Repair runs seed the matcher with every current
// assignment this way.
func (m *Matcher) MarkUsed(filenames ...string) {
	for _, f := range filenames {
		if f != "" {
			m.used[f] = true
		}
	}
}

// Claim marks an image as used if no one holds it yet, reporting whether
// the claim succeeded.
func (m *Matcher) Claim(filename string) bool {
	if filename == "" || m.used[filename] {
		return false
	}
	m.used[filename] = true
	return true
}

// Score rates one image against one product. Exact normalized-name
// equality scores ExactScore; otherwise the token-overlap score applies,
// with the edit-distance ratio as a fallback for abbreviated filenames
// that share no whole token with the product name.
func Score(product *model.ProductRecord, image *model.ImageAsset) int {
	nameKey := normalize.Key(product.Name)
	imageKey := normalize.Key(trimExt(image.Filename))

	if nameKey != "" && nameKey == imageKey {
		return ExactScore
	}

	tokens := normalize.Tokens(product.Name)
	brandKey := normalize.Key(product.EffectiveBrand())
	if score := similarity.TokenScore(tokens, brandKey, imageKey); score > 0 {
		return score
	}

	if r := similarity.Ratio(nameKey, imageKey); r >= nearExactRatio {
		return int(r * ratioScale)
	}
	return 0
}

// MatchOne finds the best unused image for a single product. Ties keep the
// first image encountered in scan order, which keeps runs deterministic
// for a fixed inventory order. The second return is false when no image
// clears the threshold.
func (m *Matcher) MatchOne(product *model.ProductRecord, images []model.ImageAsset) (model.Assignment, bool) {
	best := -1
	bestScore := 0

	for i := range images {
		if m.used[images[i].Filename] {
			continue
		}
		if score := Score(product, &images[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 || bestScore < m.minScore {
		return model.Assignment{}, false
	}

	m.used[images[best].Filename] = true
	return model.Assignment{
		ProductID:     product.ID,
		ImageFilename: images[best].Filename,
		Score:         bestScore,
	}, true
}

// MatchUnassigned walks products in their given order and assigns the best
// unused image to each product that lacks one. Products already carrying
// an image only contribute their filename to the used set. Unmatched
// products are a valid outcome, not an error.
func (m *Matcher) MatchUnassigned(ctx context.Context, products []model.ProductRecord, images []model.ImageAsset) ([]model.Assignment, error) {
	for i := range products {
		if products[i].HasImage() {
			m.MarkUsed(products[i].ImageFilename)
		}
	}

	var assignments []model.Assignment
	for i := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if products[i].HasImage() {
			continue
		}

		assignment, ok := m.MatchOne(&products[i], images)
		if !ok {
			slog.Debug("No image cleared the match threshold",
				"product", products[i].ID,
				"name", products[i].Name)
			continue
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

func trimExt(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[:i]
		}
		if filename[i] == '/' || filename[i] == '\\' {
			break
		}
	}
	return filename
}
