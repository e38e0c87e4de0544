package cache

// Keyer generates cache keys for the artifacts the pipeline stores.
//
// Keys embed a hash of everything that influences the artifact, so a
// changed spec or changed render options never collides with an older
// entry.
type Keyer interface {
	// PartKey returns the key for a rendered footprint file. specHash
	// is the content hash of the part's merged spec.
	PartKey(family, name, specHash string) string

	// PreviewKey returns the key for a rendered preview image.
	// contentHash is the content hash of the rendered footprint file
	// the preview was drawn from.
	PreviewKey(contentHash string, opts PreviewKeyOpts) string
}

// PreviewKeyOpts carries the render options that change preview output.
type PreviewKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale"`
	Margin float64 `json:"margin"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// PartKey generates a key for a rendered footprint file.
func (DefaultKeyer) PartKey(family, name, specHash string) string {
	return hashKey("part", family, name, specHash)
}

// PreviewKey generates a key for a rendered preview image.
func (DefaultKeyer) PreviewKey(contentHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", contentHash, opts)
}
