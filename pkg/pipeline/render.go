package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/hassetower/pkg/cache"
	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/hasse"
	graphio "github.com/matzehuels/hassetower/pkg/io"
	"github.com/matzehuels/hassetower/pkg/observability"
	"github.com/matzehuels/hassetower/pkg/render"
	"github.com/matzehuels/hassetower/pkg/render/nodelink"
)

// cacheKeyType labels artifact entries in cache hooks.
const cacheKeyType = "artifact"

// Render produces the requested formats for d.
func (r *Runner) Render(ctx context.Context, d *hasse.Diagram, opts Options) (map[render.Format][]byte, error) {
	result := &Result{Diagram: d}
	if err := r.RenderInto(ctx, result, opts); err != nil {
		return nil, err
	}
	return result.Artifacts, nil
}

// RenderInto renders result.Diagram and fills in the DOT text, artifacts
// and cache information of result.
func (r *Runner) RenderInto(ctx context.Context, result *Result, opts Options) error {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	formats := make([]string, len(opts.Formats))
	for i, f := range opts.Formats {
		formats[i] = string(f)
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	err := r.renderAll(ctx, result, opts)

	duration := time.Since(start)
	hooks.OnRenderComplete(ctx, formats, duration, err)
	if err != nil {
		return err
	}

	opts.Logger.Info("rendered outputs",
		"formats", formats,
		"cache_hits", result.CacheInfo.Hits,
		"duration", duration)
	return nil
}

func (r *Runner) renderAll(ctx context.Context, result *Result, opts Options) error {
	result.DOT = nodelink.ToDOT(result.Diagram.Graph, nodelink.Options{Detailed: opts.Detailed})
	result.DOTHash = cache.Hash([]byte(result.DOT))
	result.Artifacts = make(map[render.Format][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := r.renderFormat(ctx, result, format, opts)
		if err != nil {
			return err
		}
		result.Artifacts[format] = data
	}
	return nil
}

func (r *Runner) renderFormat(ctx context.Context, result *Result, format render.Format, opts Options) ([]byte, error) {
	switch format {
	case render.DOT:
		return []byte(result.DOT), nil
	case render.JSON:
		var buf bytes.Buffer
		if err := graphio.WriteJSON(result.Diagram.Graph, &buf); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode json")
		}
		return buf.Bytes(), nil
	}

	key := r.Keyer.ArtifactKey(result.DOTHash, opts.ArtifactKeyOpts(format))
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if hit {
			hooks.OnCacheHit(ctx, cacheKeyType)
			result.CacheInfo.Hits++
			opts.Logger.Debug("artifact from cache", "format", format)
			return data, nil
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	data, err := nodelink.Render(ctx, result.DOT, format)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "render %s", format)
	}
	result.CacheInfo.Misses++

	if err := r.Cache.Set(ctx, key, data, opts.ArtifactTTL); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return data, nil
}
