package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hassetower/pkg/cache"
	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/hasse"
	"github.com/matzehuels/hassetower/pkg/observability"
	"github.com/matzehuels/hassetower/pkg/poset"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline.
func (r *Runner) Execute(ctx context.Context, entities []poset.Entity, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	d, err := r.Build(ctx, entities, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Diagram: d}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Entities = len(entities)
	result.Stats.Elements = len(d.Elements)
	result.Stats.Tiers = len(d.Tiers)
	result.Stats.Edges = d.EdgeCount()

	renderStart := time.Now()
	if err := r.RenderInto(ctx, result, opts); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	return result, nil
}

// Build validates entities and computes their Hasse diagram.
func (r *Runner) Build(ctx context.Context, entities []poset.Entity, opts Options) (*hasse.Diagram, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	if opts.PrintTuples {
		for _, e := range entities {
			logger.Info("tuple", "name", e.Name, "vector", e.Vector.String())
		}
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(entities))
	start := time.Now()

	d, err := r.build(entities, opts)

	duration := time.Since(start)
	var stats observability.BuildStats
	if d != nil {
		stats = observability.BuildStats{
			Entities: len(entities),
			Elements: len(d.Elements),
			Tiers:    len(d.Tiers),
			Edges:    d.EdgeCount(),
		}
	}
	hooks.OnBuildComplete(ctx, stats, duration, err)
	if err != nil {
		return nil, err
	}

	logger.Info("built diagram",
		"elements", stats.Elements,
		"tiers", stats.Tiers,
		"edges", stats.Edges,
		"duration", duration)
	return d, nil
}

func (r *Runner) build(entities []poset.Entity, opts Options) (*hasse.Diagram, error) {
	if err := ValidateEntities(entities); err != nil {
		return nil, err
	}

	d, err := hasse.Build(entities)
	if errors.Is(err, poset.ErrLengthMismatch) || errors.Is(err, poset.ErrEmptyVector) {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "vectors must share one non-zero length")
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "build diagram")
	}

	if opts.Verify {
		if err := hasse.Verify(d); err != nil {
			return nil, errs.Wrap(errs.ErrCodeVerifyFailed, err, "diagram failed verification")
		}
		opts.Logger.Debug("verified diagram")
	}
	return d, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
