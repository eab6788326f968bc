package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnknownFormat is returned by [ParseFormat] for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output format name.
type Format string

// Supported output formats.
const (
	DOT  Format = "dot"
	SVG  Format = "svg"
	PNG  Format = "png"
	JSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{DOT, SVG, PNG, JSON}

// ParseFormat converts a case-insensitive name into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case DOT, SVG, PNG, JSON:
		return f, nil
	case "gv":
		return DOT, nil
	}
	return "", fmt.Errorf("%w: %q (valid: dot, svg, png, json)", ErrUnknownFormat, s)
}

// ParseFormats parses a list of format names, dropping duplicates while
// keeping the first occurrence order.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	for _, name := range names {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type used when serving the format.
func (f Format) ContentType() string {
	switch f {
	case SVG:
		return "image/svg+xml"
	case PNG:
		return "image/png"
	case JSON:
		return "application/json"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

// NeedsGraphviz reports whether producing the format runs a Graphviz layout.
func (f Format) NeedsGraphviz() bool { return f == SVG || f == PNG }
