// Package model defines the core domain models used throughout the application.
package model

// DefaultBrand is the sentinel brand assigned to catalog rows imported
// without an explicit brand.
const DefaultBrand = "GENERIKE"

// ProductRecord represents a single catalog entry. Category fields and the
// image assignment are populated by the classification and matching passes;
// everything else comes from the catalog import.
type ProductRecord struct {
	ID            string
	Name          string
	Brand         string
	Description   string
	Category      string
	Subcategory   string
	CategoryPath  string
	Reason        string
	ImageFilename string
	Confidence    float64
}

// EffectiveBrand returns the product's brand, or the sentinel brand when
// the import supplied none.
func (p *ProductRecord) EffectiveBrand() string {
	if p.Brand == "" {
		return DefaultBrand
	}
	return p.Brand
}

// HasImage reports whether a primary image has been assigned.
func (p *ProductRecord) HasImage() bool {
	return p.ImageFilename != ""
}
