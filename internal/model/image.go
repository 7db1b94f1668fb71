package model

// ImageAsset represents one image file discovered during an inventory scan.
// Hash is a sha256 digest of the file bytes; two assets with equal hashes
// are the same logical image regardless of filename or location.
type ImageAsset struct {
	Filename string
	Path     string
	Hash     string
}

// Assignment links a product to its primary image. Score is the matcher
// score that justified the link; Fallback marks assignments made from the
// unused pool during shared-image repair rather than by similarity.
type Assignment struct {
	ProductID     string
	ImageFilename string
	Score         int
	Fallback      bool
}
