package cache

// Keyer derives cache keys for each kind of cached entry.
type Keyer interface {
	// SummaryKey is the key for the aggregated summaries of a dataset.
	SummaryKey(datasetHash string) string

	// ArtifactKey is the key for one rendered output of a dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	LayoutHash string   `json:"layout_hash"`
	PageTitle  string   `json:"page_title,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	NoSummary  bool     `json:"no_summary,omitempty"`
	Hover      *float64 `json:"hover,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SummaryKey returns "summary:<datasetHash>".
func (DefaultKeyer) SummaryKey(datasetHash string) string {
	return "summary:" + datasetHash
}

// ArtifactKey hashes the dataset hash together with opts.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, datasetHash, opts)
}
