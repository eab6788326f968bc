// Package pipeline provides the diagram pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Group entities into poset elements and compute the Hasse
//     diagram (see package hasse). This stage is pure and never cached.
//  2. Render: Emit DOT, then produce the requested formats. Graphviz
//     output (SVG, PNG) is cached by the hash of the DOT text and format.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, entities, pipeline.Options{
//	    Formats: []render.Format{render.SVG, render.DOT},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[render.SVG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hassetower/pkg/cache"
	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/hasse"
	"github.com/matzehuels/hassetower/pkg/poset"
	"github.com/matzehuels/hassetower/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = render.SVG

	// DefaultArtifactTTL is how long rendered artifacts stay cached.
	DefaultArtifactTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Formats lists the artifacts to produce. Defaults to [DefaultFormat].
	Formats []render.Format `json:"formats,omitempty"`

	// Detailed adds the tier index to node labels.
	Detailed bool `json:"detailed,omitempty"`

	// PrintTuples logs every entity and its vector before building.
	PrintTuples bool `json:"print_tuples,omitempty"`

	// Verify checks the finished diagram with [hasse.Verify].
	Verify bool `json:"verify,omitempty"`

	// Refresh re-renders artifacts even when they are cached.
	Refresh bool `json:"refresh,omitempty"`

	// ArtifactTTL overrides [DefaultArtifactTTL].
	ArtifactTTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the computed Hasse diagram.
	Diagram *hasse.Diagram

	// DOT is the Graphviz source every artifact was produced from.
	DOT string

	// DOTHash is the content hash of DOT, as used in cache keys.
	DOTHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[render.Format][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks artifact cache usage.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entities   int
	Elements   int
	Tiers      int
	Edges      int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache use for the Graphviz formats of a run.
type CacheInfo struct {
	Hits   int // Artifacts served from cache
	Misses int // Artifacts rendered and stored
}

// RenderHit reports whether every Graphviz artifact came from the cache.
func (c CacheInfo) RenderHit() bool { return c.Hits > 0 && c.Misses == 0 }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []render.Format) error {
	_, err := normalizeFormats(formats)
	return err
}

// normalizeFormats canonicalizes format names and drops duplicates.
func normalizeFormats(formats []render.Format) ([]render.Format, error) {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	out, err := render.ParseFormats(names)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid format")
	}
	return out, nil
}

// ValidateEntities checks entity names and vectors before a build.
func ValidateEntities(entities []poset.Entity) error {
	for _, e := range entities {
		if err := errs.ValidateEntityName(e.Name); err != nil {
			return err
		}
		if err := e.Vector.Validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "entity %q", e.Name)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{DefaultFormat}
	}
	formats, err := normalizeFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats
	if o.ArtifactTTL == 0 {
		o.ArtifactTTL = DefaultArtifactTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// The detailed flag is already part of the DOT text, so only the format
// contributes.
func (o *Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: string(format)}
}
