package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/poset"
	"github.com/matzehuels/hassetower/pkg/table"
)

// stdinPath reads the input table from standard input.
const stdinPath = "-"

// inputFlags controls how an input file becomes entities.
type inputFlags struct {
	vectors  bool // input is a JSON/YAML/TOML name -> vector map
	noHeader bool // keep the first CSV row as data
	noIndex  bool // keep the first CSV column as data
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.vectors, "vectors", false, "input is a JSON, YAML or TOML file of precomputed vectors")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "treat the first CSV row as data")
	cmd.Flags().BoolVar(&f.noIndex, "no-index", false, "treat the first CSV column as data")
}

// loadEntities reads entities from path according to flags.
// Vector files are also recognized by extension without --vectors.
func loadEntities(path string, flags inputFlags) ([]poset.Entity, error) {
	if path == stdinPath {
		if flags.vectors {
			return nil, errs.New(errs.ErrCodeUnsupported, "vector input from stdin is not supported")
		}
		entities, err := table.ReadEntities(os.Stdin, flags.tableOptions())
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read stdin")
		}
		return entities, nil
	}

	var (
		entities []poset.Entity
		err      error
	)
	if flags.vectors || table.FormatFromPath(path) != "" {
		entities, err = table.LoadVectors(path)
	} else {
		entities, err = table.ReadFile(path, flags.tableOptions())
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "input %s", path)
	case errors.Is(err, table.ErrUnsupportedFormat):
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "input %s", path)
	case err != nil:
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "input %s", path)
	}
	return entities, nil
}

func (f inputFlags) tableOptions() table.Options {
	return table.Options{NoHeader: f.noHeader, NoIndex: f.noIndex}
}
