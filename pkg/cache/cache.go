// Package cache provides caching for expensive pipeline stages.
//
// The Cache interface abstracts the storage backend: a file-based cache
// for CLI usage, a Redis cache for shared deployments, and a null cache
// for tests or when caching is disabled. The Keyer interface generates
// deterministic cache keys from pipeline inputs, so identical requests
// hit the same entry regardless of who issues them.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry type. Assembled specs are cheap to
// rebuild, rendered artifacts less so.
const (
	// TTLSpec is the expiration for assembled chart specs.
	TTLSpec = 24 * time.Hour

	// TTLArtifact is the expiration for rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys.
//
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures. A ttl of 0 stores the entry without expiration and
// a negative ttl stores it already expired.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SpecKeyOpts holds the options that shape an assembled chart spec.
// Every field participates in the key: two requests with different
// options must never share an entry.
type SpecKeyOpts struct {
	Centrality     string
	CI             float64
	Method         string
	Strict         bool
	Kind           string
	RidgeThreshold int
	GridSize       int
}

// ArtifactKeyOpts holds the options that shape a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
	Width  int
	Height int
	DPI    int
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// SpecKey generates a key for an assembled chart spec. tableHash
	// identifies the input table contents.
	SpecKey(tableHash string, opts SpecKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact. specHash
	// identifies the assembled spec the artifact was rendered from.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys by hashing the stage inputs and options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SpecKey generates a key for an assembled chart spec.
func (k *DefaultKeyer) SpecKey(tableHash string, opts SpecKeyOpts) string {
	return hashKey("spec", tableHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", specHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
