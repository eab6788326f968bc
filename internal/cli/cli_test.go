package cli

import (
	"io"
	"slices"
	"testing"

	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/render"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"build", "tiers", "verify", "serve", "cache", "version", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats("svg, DOT,gv")
	if err != nil {
		t.Fatalf("parseFormats() error = %v", err)
	}
	if want := []render.Format{render.SVG, render.DOT}; !slices.Equal(got, want) {
		t.Errorf("parseFormats() = %v, want %v", got, want)
	}

	if got, err := parseFormats(""); err != nil || got != nil {
		t.Errorf("parseFormats(\"\") = %v, %v; want nil, nil", got, err)
	}

	if _, err := parseFormats("svg,pdf"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("parseFormats(bad) error = %v, want INVALID_FORMAT", err)
	}
}
