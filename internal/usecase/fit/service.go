package fit

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

// Input represents the parameters of one fit.
type Input struct {
	Observations []entity.Observation
	// Constant overrides the model constant when non-nil.
	Constant *float64
}

// Service fits the Gibbs model to uploaded observations.
// The zero value fits with gibbs.DefaultModel and logs to slog.Default.
type Service struct {
	Model  *gibbs.Model
	Logger *slog.Logger
}

func (s *Service) model() gibbs.Model {
	if s.Model == nil {
		return gibbs.DefaultModel
	}
	return *s.Model
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	logger := s.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	return logging.WithRequestID(ctx, logger)
}

// Fit fits alpha to the observations in input order.
// Domain failures are returned as *entity.FitError.
func (s *Service) Fit(ctx context.Context, in Input) (*entity.FitResult, error) {
	ctx, span := tracing.StartSpan(ctx, "fit.Fit",
		attribute.Int("fit.observations", len(in.Observations)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := s.model()
	if in.Constant != nil {
		if math.IsNaN(*in.Constant) || math.IsInf(*in.Constant, 0) {
			err := &entity.ValidationError{Field: "constant", Message: ErrInvalidConstant.Error()}
			tracing.RecordError(span, err)
			metrics.RecordFit(metrics.StatusRejected, 0, len(in.Observations))
			return nil, err
		}
		m.Constant = *in.Constant
	}

	start := time.Now()
	res, err := m.Fit(in.Observations)
	elapsed := time.Since(start)
	logger := s.logger(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordFit(metrics.StatusRejected, elapsed, len(in.Observations))
		logger.Warn("fit rejected",
			slog.Int("observations", len(in.Observations)),
			slog.Any("error", err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("fit.alpha", res.Alpha),
		attribute.Float64("fit.rss", res.RSS),
	)
	metrics.RecordFit(metrics.StatusSuccess, elapsed, res.Len())
	logger.Info("fit completed",
		slog.Int("observations", res.Len()),
		slog.Float64("constant", res.Constant),
		slog.Float64("alpha", res.Alpha),
		slog.Float64("rss", res.RSS),
		slog.Duration("duration", elapsed))
	return res, nil
}

// FitCSV reads an observation CSV from r and fits it.
func (s *Service) FitCSV(ctx context.Context, r io.Reader, constant *float64) (*entity.FitResult, error) {
	obs, err := csvio.ReadObservations(r)
	if err != nil {
		metrics.RecordFit(metrics.StatusRejected, 0, 0)
		s.logger(ctx).Warn("observation csv rejected", slog.Any("error", err))
		return nil, fmt.Errorf("read observations: %w", err)
	}
	return s.Fit(ctx, Input{Observations: obs, Constant: constant})
}

// RenderChart writes the data-and-fit chart of res to w.
func (s *Service) RenderChart(ctx context.Context, w io.Writer, format chart.Format, res *entity.FitResult) error {
	_, span := tracing.StartSpan(ctx, "fit.RenderChart", attribute.String("chart.format", string(format)))
	defer span.End()

	start := time.Now()
	err := chart.RenderFit(w, format, res)
	metrics.RecordChartRender("fit", string(format), time.Since(start))
	if err != nil {
		tracing.RecordError(span, err)
		if !errors.Is(err, chart.ErrNotEnoughPoints) && !errors.Is(err, chart.ErrUnsupportedFormat) {
			s.logger(ctx).Error("fit chart render failed", slog.Any("error", err))
		}
		return err
	}
	return nil
}
