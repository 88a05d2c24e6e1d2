package cache

// DenseKeyOpts holds the options that change a densified graph.
type DenseKeyOpts struct {
	Step           float64 `json:"step"`
	Policy         string  `json:"policy"`
	SkipDegenerate bool    `json:"skip_degenerate"`
	MaxPoints      int     `json:"max_points"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Width        float64 `json:"width"`
	ShowOriginal bool    `json:"show_original"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DenseKey returns the key for the densified form of a graph.
	DenseKey(graphHash string, opts DenseKeyOpts) string

	// ArtifactKey returns the key for a rendering of a densified graph.
	ArtifactKey(denseHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DenseKey implements Keyer.
func (DefaultKeyer) DenseKey(graphHash string, opts DenseKeyOpts) string {
	return hashKey("dense", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(denseHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", denseHash, opts)
}
