package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"calphad-sn/internal/infra/chart"
)

// outputFormat is a pflag.Value restricted to a fixed set of formats.
type outputFormat struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*outputFormat)(nil)

func newOutputFormat(def string, allowed ...string) *outputFormat {
	return &outputFormat{value: def, allowed: allowed}
}

func (f *outputFormat) String() string { return f.value }

func (f *outputFormat) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(f.allowed, s) {
		return fmt.Errorf("must be one of %s", strings.Join(f.allowed, ", "))
	}
	f.value = s
	return nil
}

func (f *outputFormat) Type() string { return "format" }

// chartFormat picks the image format from the file extension.
func chartFormat(path string) (chart.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return chart.PNG, nil
	case ".svg":
		return chart.SVG, nil
	default:
		return "", fmt.Errorf("%w: chart file must end in .png or .svg, got %q", chart.ErrUnsupportedFormat, ext)
	}
}

// writeChart renders into memory first so a failed render leaves no file behind.
func writeChart(path string, render func(io.Writer, chart.Format) error) error {
	format, err := chartFormat(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render(&buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openInput opens path, or stdin for "-".
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path) // #nosec G304 -- path is a command-line argument
	if err != nil {
		return nil, err
	}
	return f, nil
}
