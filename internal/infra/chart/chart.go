// Package chart renders fit results and term tables as PNG or SVG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"calphad-sn/internal/domain/entity"
)

// Format names an output image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

const (
	FitTitle   = "Total Energy of BCT Sn - Data & Fit"
	TermsTitle = "Gibbs Free Energy Terms"

	width  = 1000
	height = 600
)

var (
	// ErrUnsupportedFormat is returned for formats other than png and svg.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
	// ErrNotEnoughPoints is returned when the temperatures span a zero-width range.
	ErrNotEnoughPoints = errors.New("chart needs at least two distinct temperatures")
)

// ParseFormat maps a query or flag value to a Format. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the encoded image.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() (gochart.RendererProvider, error) {
	switch f {
	case PNG:
		return gochart.PNG, nil
	case SVG:
		return gochart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// FitLegend is the legend label of the fitted curve.
func FitLegend(alpha float64) string {
	return fmt.Sprintf("Fitted Curve (α = %.6f)", alpha)
}

// RenderFit draws the observations as dots and the fitted curve as a dashed line.
func RenderFit(w io.Writer, format Format, res *entity.FitResult) error {
	if res == nil || res.Len() == 0 {
		return ErrNotEnoughPoints
	}

	// The curve is drawn in temperature order; the observations keep input order.
	order := make([]int, res.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return res.Temperatures[order[a]] < res.Temperatures[order[b]]
	})
	curveX := make([]float64, len(order))
	curveY := make([]float64, len(order))
	for i, idx := range order {
		curveX[i] = res.Temperatures[idx]
		curveY[i] = res.Fitted[idx]
	}

	ch := gochart.Chart{
		Title: FitTitle,
		XAxis: gochart.XAxis{Name: "Temperature (K)"},
		YAxis: gochart.YAxis{Name: "Total Energy"},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Original Data",
				XValues: res.Temperatures,
				YValues: res.Observed,
				Style:   pointStyle(gochart.ColorRed),
			},
			gochart.ContinuousSeries{
				Name:    FitLegend(res.Alpha),
				XValues: curveX,
				YValues: curveY,
				Style: gochart.Style{
					StrokeWidth:     2,
					StrokeColor:     gochart.ColorBlue,
					StrokeDashArray: []float64{6, 4},
				},
			},
		},
	}
	return render(w, format, ch, res.Temperatures)
}

// RenderTerms draws one line with markers per term and one for the total.
func RenderTerms(w io.Writer, format Format, table entity.TermTable) error {
	temps := table.Temperatures()

	series := make([]gochart.Series, 0, len(entity.TermNames))
	for i, name := range entity.TermNames {
		col := gochart.GetDefaultColor(i)
		series = append(series, gochart.ContinuousSeries{
			Name:    name,
			XValues: temps,
			YValues: table.Column(i),
			Style: gochart.Style{
				StrokeWidth: 2,
				StrokeColor: col,
				DotWidth:    3,
				DotColor:    col,
			},
		})
	}

	ch := gochart.Chart{
		Title:  TermsTitle,
		XAxis:  gochart.XAxis{Name: "Temperature (K)"},
		YAxis:  gochart.YAxis{Name: "Term Value"},
		Series: series,
	}
	return render(w, format, ch, temps)
}

func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func render(w io.Writer, format Format, ch gochart.Chart, xs []float64) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	if !spansRange(xs) {
		return ErrNotEnoughPoints
	}

	ch.Width = width
	ch.Height = height
	ch.Background = gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	return nil
}

func spansRange(xs []float64) bool {
	if len(xs) < 2 {
		return false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return hi > lo
}
