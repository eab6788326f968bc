package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/pipeline"
	"github.com/matzehuels/hassetower/pkg/render"
	"github.com/matzehuels/hassetower/pkg/render/nodelink"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	input       inputFlags
	cache       cacheFlags
	formats     string // comma-separated output formats
	output      string // output file, base path, or "-" for stdout
	detailed    bool   // add tier indices to labels
	printTuples bool   // log every entity vector
	verify      bool   // check the diagram before writing
	refresh     bool   // ignore cached artifacts
}

// buildCommand creates the build command, the main entry point.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <input> [output]",
		Short: "Build a Hasse diagram from a ranking table",
		Long: `Build a Hasse diagram from a ranking table.

The input is a CSV file whose first row is a header and whose first column is
a row label. Every other cell names an entity; each entity's vector counts how
often it appears in each column. Entities with identical vectors share a node.
With --vectors (or a .json/.yaml/.toml input) the vectors are read directly.

The output format follows --format, then the extension of the output path,
then the configured default. Without an output path, files are written next
to the input. Use "-" to write a single format to stdout.`,
		Example: `  hasse build rankings.csv rankings.dot
  hasse build rankings.csv -f svg,png
  hasse build vectors.yaml - -f dot --detailed`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				if opts.output != "" {
					return errs.New(errs.ErrCodeInvalidInput, "output given both as argument and --output")
				}
				opts.output = args[1]
			}
			return c.runBuild(cmd.Context(), args[0], opts)
		},
	}

	opts.input.register(cmd)
	opts.cache.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): dot, svg, png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add the tier index to node labels")
	cmd.Flags().BoolVar(&opts.printTuples, "print-tuples", false, "log each entity and its vector")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "verify the diagram before writing it")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// runBuild loads the input, runs the pipeline and writes every artifact.
func (c *CLI) runBuild(ctx context.Context, input string, opts buildOpts) error {
	formats, err := c.resolveFormats(opts.formats, opts.output)
	if err != nil {
		return err
	}
	if opts.output == stdinPath && len(formats) > 1 {
		return errs.New(errs.ErrCodeInvalidInput, "stdout takes a single format, got %d", len(formats))
	}

	entities, err := loadEntities(input, opts.input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// The spinner shares stderr with the log, so it stays off when tuples
	// are printed.
	showSpinner := opts.output != stdinPath && !opts.printTuples
	spinner := newSpinnerWithContext(ctx, "Building diagram...")
	if showSpinner {
		spinner.Start()
		defer spinner.Stop()
	}

	res, err := runner.Execute(ctx, entities, pipeline.Options{
		Formats:     formats,
		Detailed:    opts.detailed || c.Config.Detailed,
		PrintTuples: opts.printTuples || c.Config.PrintTuples,
		Verify:      opts.verify,
		Refresh:     opts.refresh,
		ArtifactTTL: c.Config.CacheTTL,
	})
	if err != nil {
		return err
	}

	if opts.output == stdinPath {
		_, err := os.Stdout.Write(res.Artifacts[formats[0]])
		return err
	}
	if showSpinner {
		spinner.Stop()
	}

	paths := outputPaths(input, opts.output, formats)
	for _, f := range formats {
		if err := os.WriteFile(paths[f], res.Artifacts[f], 0o644); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "write %s", paths[f])
		}
	}

	printSuccess("Built Hasse diagram")
	printStats(res.Stats.Elements, res.Stats.Edges, res.CacheInfo.RenderHit())
	for _, f := range formats {
		printFile(paths[f])
	}
	if dot, ok := paths[render.DOT]; ok {
		printNewline()
		printNextStep("Convert to PNG", nodelink.ConvertHint(dot))
	}
	return nil
}

// resolveFormats picks formats from the flag, the output extension or the
// config, in that order.
func (c *CLI) resolveFormats(flag, output string) ([]render.Format, error) {
	formats, err := parseFormats(flag)
	if err != nil {
		return nil, err
	}
	if len(formats) > 0 {
		return formats, nil
	}
	if f, ok := render.FormatFromPath(output); ok {
		return []render.Format{f}, nil
	}
	if formats := c.Config.formats(); len(formats) > 0 {
		return formats, nil
	}
	return []render.Format{pipeline.DefaultFormat}, nil
}

// outputPaths maps each format to the file it is written to.
//
// A single format with an explicit output path is written to that path as
// is. Otherwise the output (or the input, when no output is given) is used
// as a base path and each format gets its own extension.
func outputPaths(input, output string, formats []render.Format) map[render.Format]string {
	paths := make(map[render.Format]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + f.Ext()
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return "hasse"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if _, ok := render.FormatFromPath(output); ok {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}
