package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/spf13/cobra"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/domain/gibbs"
	"calphad-sn/internal/infra/chart"
	"calphad-sn/internal/infra/csvio"
	fitUC "calphad-sn/internal/usecase/fit"
)

// FitOutput represents the JSON output format of a fit.
type FitOutput struct {
	Constant     float64             `json:"constant"`
	Alpha        float64             `json:"alpha"`
	AlphaDisplay string              `json:"alpha_display"`
	StdErr       *float64            `json:"std_err"`
	RSS          float64             `json:"rss"`
	Observations []ObservationOutput `json:"observations"`
}

// ObservationOutput is one observed and fitted energy.
type ObservationOutput struct {
	Temperature float64 `json:"temperature"`
	Observed    float64 `json:"observed"`
	Fitted      float64 `json:"fitted"`
	Residual    float64 `json:"residual"`
}

func newFitCmd(root *rootOptions) *cobra.Command {
	var (
		constant  float64
		chartPath string
	)
	output := newOutputFormat("text", "text", "json", "csv")

	cmd := &cobra.Command{
		Use:   "fit FILE",
		Short: "Fit alpha to an observation CSV",
		Long: `Fit alpha in E(T) = constant + alpha·T·ln(T) to the observations in FILE.
FILE must contain the columns Temperature(K) and TotalEnergy; use - for stdin.`,
		Example: `  gibbs fit observations.csv
  gibbs fit observations.csv --output json --chart fit.png
  gibbs fit - --constant -5800 < observations.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			svc := &fitUC.Service{
				Model:  &gibbs.Model{Constant: root.coefficients.Constant},
				Logger: root.logger,
			}
			var override *float64
			if cmd.Flags().Changed("constant") {
				override = &constant
			}

			res, err := svc.FitCSV(cmd.Context(), in, override)
			if err != nil {
				return err
			}

			if chartPath != "" {
				err := writeChart(chartPath, func(w io.Writer, f chart.Format) error {
					return svc.RenderChart(cmd.Context(), w, f, res)
				})
				if err != nil {
					return err
				}
				root.logger.Info("chart written", slog.String("path", chartPath))
			}

			out := cmd.OutOrStdout()
			switch output.String() {
			case "json":
				return writeJSON(out, newFitOutput(res))
			case "csv":
				return csvio.WriteFitResult(out, res)
			default:
				return writeFitText(out, res)
			}
		},
	}

	cmd.Flags().Float64Var(&constant, "constant", 0, "override the model constant (default: the BCT Sn constant)")
	cmd.Flags().Var(output, "output", "output format: text, json or csv")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write the data-and-fit chart to this .png or .svg file")
	return cmd
}

func newFitOutput(res *entity.FitResult) FitOutput {
	out := FitOutput{
		Constant:     res.Constant,
		Alpha:        res.Alpha,
		AlphaDisplay: fmt.Sprintf("%.6f", res.Alpha),
		RSS:          res.RSS,
		Observations: make([]ObservationOutput, res.Len()),
	}
	if !math.IsInf(res.StdErr, 0) && !math.IsNaN(res.StdErr) {
		se := res.StdErr
		out.StdErr = &se
	}
	for i := range out.Observations {
		out.Observations[i] = ObservationOutput{
			Temperature: res.Temperatures[i],
			Observed:    res.Observed[i],
			Fitted:      res.Fitted[i],
			Residual:    res.Residuals[i],
		}
	}
	return out
}

func writeFitText(w io.Writer, res *entity.FitResult) error {
	stdErr := "n/a"
	if !math.IsInf(res.StdErr, 0) && !math.IsNaN(res.StdErr) {
		stdErr = fmt.Sprintf("%.6g", res.StdErr)
	}
	_, err := fmt.Fprintf(w,
		"Fitted alpha:   %.6f\nStandard error: %s\nConstant:       %s\nRSS:            %.6g\nObservations:   %d\n",
		res.Alpha, stdErr, csvio.FormatFloat(res.Constant), res.RSS, res.Len())
	return err
}
