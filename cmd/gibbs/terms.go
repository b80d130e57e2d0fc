package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/infra/chart"
	"calphad-sn/internal/infra/csvio"
	termsUC "calphad-sn/internal/usecase/terms"
)

// TermsOutput represents the JSON output format of a term table.
type TermsOutput struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

func newTermsCmd(root *rootOptions) *cobra.Command {
	in := termsUC.DefaultRange()
	var (
		maxRows   int
		chartPath string
	)
	output := newOutputFormat("csv", "csv", "json", "text")

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Tabulate the six Gibbs energy terms over a temperature range",
		Example: `  gibbs terms > gibbs_terms_sn_BCT.csv
  gibbs terms --start 300 --end 600 --step 10 --output text
  gibbs terms --chart terms.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := termsUC.NewService(root.coefficients, maxRows, root.logger)
			table, err := svc.Table(cmd.Context(), in)
			if err != nil {
				return err
			}

			if chartPath != "" {
				err := writeChart(chartPath, func(w io.Writer, f chart.Format) error {
					return svc.RenderChart(cmd.Context(), w, f, table)
				})
				if err != nil {
					return err
				}
				root.logger.Info("chart written", slog.String("path", chartPath))
			}

			out := cmd.OutOrStdout()
			switch output.String() {
			case "json":
				return writeJSON(out, newTermsOutput(table))
			case "text":
				return writeTermsText(out, table)
			default:
				return csvio.WriteTermTable(out, table)
			}
		},
	}

	cmd.Flags().Float64Var(&in.Start, "start", in.Start, "first temperature in K")
	cmd.Flags().Float64Var(&in.End, "end", in.End, "last temperature in K (inclusive)")
	cmd.Flags().Float64Var(&in.Step, "step", in.Step, "temperature step in K")
	cmd.Flags().IntVar(&maxRows, "max-rows", termsUC.DefaultMaxRows, "refuse ranges with more rows than this")
	cmd.Flags().Var(output, "output", "output format: csv, json or text")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write the term chart to this .png or .svg file")
	return cmd
}

func newPlotTermsCmd(root *rootOptions) *cobra.Command {
	var chartPath string

	cmd := &cobra.Command{
		Use:     "plot-terms FILE",
		Short:   "Render a term table exported by 'gibbs terms' or the API",
		Example: `  gibbs plot-terms gibbs_terms_sn_BCT.csv --chart terms.png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer f.Close()

			table, err := csvio.ReadTermTable(f)
			if err != nil {
				return fmt.Errorf("read term table: %w", err)
			}

			svc := termsUC.NewService(root.coefficients, 0, root.logger)
			if err := writeChart(chartPath, func(w io.Writer, format chart.Format) error {
				return svc.RenderChart(cmd.Context(), w, format, table)
			}); err != nil {
				return err
			}
			root.logger.Info("chart written", slog.String("path", chartPath), slog.Int("rows", len(table.Rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&chartPath, "chart", "", "output .png or .svg file")
	_ = cmd.MarkFlagRequired("chart")
	return cmd
}

func newTermsOutput(table entity.TermTable) TermsOutput {
	out := TermsOutput{Columns: csvio.TermTableHeader, Rows: make([][]float64, len(table.Rows))}
	for i, r := range table.Rows {
		vals := r.Values()
		out.Rows[i] = append([]float64{r.Temperature}, vals[:]...)
	}
	return out
}

func writeTermsText(w io.Writer, table entity.TermTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(csvio.TermTableHeader, "\t")+"\t")
	for _, r := range table.Rows {
		fields := []string{fmt.Sprintf("%g", r.Temperature)}
		for _, v := range r.Values() {
			fields = append(fields, fmt.Sprintf("%.3f", v))
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t")+"\t")
	}
	return tw.Flush()
}
