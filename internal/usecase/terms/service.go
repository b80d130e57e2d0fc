package terms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/domain/gibbs"
	"calphad-sn/internal/infra/chart"
	"calphad-sn/internal/infra/csvio"
	"calphad-sn/internal/observability/logging"
	"calphad-sn/internal/observability/metrics"
	"calphad-sn/internal/observability/tracing"
)

// DefaultMaxRows bounds a table when Service.MaxRows is zero.
const DefaultMaxRows = 10000

// RangeInput represents an inclusive temperature range in kelvin.
type RangeInput struct {
	Start float64
	End   float64
	Step  float64
}

// DefaultRange returns 298 K to 495 K in steps of 30 K.
func DefaultRange() RangeInput {
	return RangeInput{Start: gibbs.DefaultStart, End: gibbs.DefaultEnd, Step: gibbs.DefaultStep}
}

// Service computes term tables for a fixed set of coefficients.
type Service struct {
	Coefficients gibbs.Coefficients
	MaxRows      int
	Logger       *slog.Logger
}

// NewService creates a service for the given coefficients.
func NewService(c gibbs.Coefficients, maxRows int, logger *slog.Logger) *Service {
	return &Service{Coefficients: c, MaxRows: maxRows, Logger: logger}
}

func (s *Service) maxRows() int {
	if s.MaxRows <= 0 {
		return DefaultMaxRows
	}
	return s.MaxRows
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	logger := s.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	return logging.WithRequestID(ctx, logger)
}

// Table decomposes the Gibbs energy at every temperature of the range.
// Returns ErrInvalidRange for unusable bounds and ErrTooManyRows when the
// range exceeds MaxRows.
func (s *Service) Table(ctx context.Context, in RangeInput) (entity.TermTable, error) {
	ctx, span := tracing.StartSpan(ctx, "terms.Table",
		attribute.Float64("range.start", in.Start),
		attribute.Float64("range.end", in.End),
		attribute.Float64("range.step", in.Step))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return entity.TermTable{}, err
	}

	n, err := gibbs.RangeLen(in.Start, in.End, in.Step)
	if err == nil && n > s.maxRows() {
		err = fmt.Errorf("%w: %d rows requested, limit is %d", ErrTooManyRows, n, s.maxRows())
	}
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordTermTable(metrics.StatusRejected, 0)
		s.logger(ctx).Warn("term table rejected", slog.Any("error", err))
		return entity.TermTable{}, err
	}

	table, err := s.Coefficients.Table(in.Start, in.End, in.Step)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordTermTable(metrics.StatusFailure, 0)
		s.logger(ctx).Error("term table failed", slog.Any("error", err))
		return entity.TermTable{}, fmt.Errorf("tabulate terms: %w", err)
	}

	if err := checkFinite(table); err != nil {
		tracing.RecordError(span, err)
		metrics.RecordTermTable(metrics.StatusRejected, 0)
		s.logger(ctx).Warn("term table rejected", slog.Any("error", err))
		return entity.TermTable{}, err
	}

	span.SetAttributes(attribute.Int("terms.rows", len(table.Rows)))
	metrics.RecordTermTable(metrics.StatusSuccess, len(table.Rows))
	s.logger(ctx).Debug("term table computed", slog.Int("rows", len(table.Rows)))
	return table, nil
}

// WriteCSV computes the table and writes it as CSV.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, in RangeInput) error {
	table, err := s.Table(ctx, in)
	if err != nil {
		return err
	}
	if err := csvio.WriteTermTable(w, table); err != nil {
		return fmt.Errorf("write term table: %w", err)
	}
	return nil
}

// RenderChart draws the term chart of table to w.
func (s *Service) RenderChart(ctx context.Context, w io.Writer, format chart.Format, table entity.TermTable) error {
	_, span := tracing.StartSpan(ctx, "terms.RenderChart", attribute.String("chart.format", string(format)))
	defer span.End()

	start := time.Now()
	err := chart.RenderTerms(w, format, table)
	metrics.RecordChartRender("terms", string(format), time.Since(start))
	if err != nil {
		tracing.RecordError(span, err)
		if !errors.Is(err, chart.ErrNotEnoughPoints) && !errors.Is(err, chart.ErrUnsupportedFormat) {
			s.logger(ctx).Error("term chart render failed", slog.Any("error", err))
		}
		return err
	}
	return nil
}

func checkFinite(table entity.TermTable) error {
	for _, row := range table.Rows {
		for _, v := range row.Values() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w at %g K", ErrNotFinite, row.Temperature)
			}
		}
	}
	return nil
}
