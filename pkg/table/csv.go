package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/hassetower/pkg/poset"
)

// ErrRaggedRow is returned when a data row has a different number of cells
// than the first data row.
var ErrRaggedRow = errors.New("row width differs from first row")

// Options controls how a ranking table is read.
type Options struct {
	// NoHeader keeps the first row as data instead of dropping it.
	NoHeader bool
	// NoIndex keeps the first column as data instead of dropping it as a
	// row label.
	NoIndex bool
}

// ReadCSV parses a ranking table and returns the data cells row by row.
//
// Cells are trimmed of surrounding whitespace. Header and index handling
// follow opts. Every data row must have the same width.
func ReadCSV(r io.Reader, opts Options) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if !opts.NoHeader && len(records) > 0 {
		records = records[1:]
	}

	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		if !opts.NoIndex && len(rec) > 0 {
			rec = rec[1:]
		}
		for j := range rec {
			rec[j] = strings.TrimSpace(rec[j])
		}
		if len(rows) > 0 && len(rec) != len(rows[0]) {
			return nil, fmt.Errorf("%w: data row %d has %d cells, want %d", ErrRaggedRow, i+1, len(rec), len(rows[0]))
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// ReadEntities parses a ranking table and aggregates it into entities with
// per-column count vectors. See [poset.Aggregate].
func ReadEntities(r io.Reader, opts Options) ([]poset.Entity, error) {
	rows, err := ReadCSV(r, opts)
	if err != nil {
		return nil, err
	}
	return poset.Aggregate(rows), nil
}

// ReadFile opens path and reads it with [ReadEntities].
func ReadFile(path string, opts Options) ([]poset.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEntities(f, opts)
}
