package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tabcompare-service/internal/compare/model"
	cmpSvc "tabcompare-service/internal/compare/service"
	"tabcompare-service/internal/config"
	"tabcompare-service/internal/export"
	"tabcompare-service/internal/fileio"
	"tabcompare-service/internal/table"
)

// Every flag can also come from the environment, e.g. TABCOMPARE_IGNORE_CASE=false.
const envPrefix = "TABCOMPARE"

func newRootCmd(stdout io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "tabcompare --a FILE --b FILE --key COLUMN [flags]",
		Short: "Compare two CSV/Excel tables by key columns",
		Long: `tabcompare aligns the rows of two tables on one or more key columns,
compares every common column and explains why cells differ.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := config.NewLogger(cmd.ErrOrStderr(), v.GetString("log-file"), v.GetString("log-level"))
			return runCompare(v, stdout, logger)
		},
	}

	f := cmd.Flags()
	f.String("a", "", "first file (.csv, .xlsx, .xls)")
	f.String("b", "", "second file (.csv, .xlsx, .xls)")
	f.String("sheet-a", "", "sheet of the first workbook (default: first sheet)")
	f.String("sheet-b", "", "sheet of the second workbook (default: first sheet)")
	f.Int("header-row-a", 1, "1-based header row of the first file")
	f.Int("header-row-b", 1, "1-based header row of the second file")
	f.StringSlice("key", nil, "key column(s); repeat or comma separate")
	f.Bool("ignore-case", true, "ignore letter case in values and column names")
	f.Bool("ignore-whitespace", true, "ignore leading/trailing whitespace")
	f.Float64("tolerance", 0, "numeric tolerance")
	f.Bool("decimal-comma", false, `accept "1 234,50" as a number`)
	f.String("column", "", "print the differing rows of this column")
	f.String("out", "", "write the two-sheet Excel report to this path")
	f.Bool("json", false, "print the full result as JSON")
	f.String("log-level", "warn", "log level")
	f.String("log-file", "", "also log to this file (rotated)")

	_ = v.BindPFlags(f)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(newSampleCmd(stdout))
	return cmd
}

func runCompare(v *viper.Viper, stdout io.Writer, logger zerolog.Logger) error {
	start := time.Now()
	if v.GetString("a") == "" || v.GetString("b") == "" {
		return fmt.Errorf("both --a and --b are required")
	}

	decimalComma := v.GetBool("decimal-comma")
	a, err := loadFile(v.GetString("a"), fileio.ReadOptions{
		Sheet:        v.GetString("sheet-a"),
		HeaderRow:    v.GetInt("header-row-a"),
		DecimalComma: decimalComma,
	})
	if err != nil {
		return err
	}
	b, err := loadFile(v.GetString("b"), fileio.ReadOptions{
		Sheet:        v.GetString("sheet-b"),
		HeaderRow:    v.GetInt("header-row-b"),
		DecimalComma: decimalComma,
	})
	if err != nil {
		return err
	}

	opt := model.Options{
		IgnoreCase:       v.GetBool("ignore-case"),
		IgnoreWhitespace: v.GetBool("ignore-whitespace"),
		NumericTolerance: v.GetFloat64("tolerance"),
	}
	res, err := cmpSvc.Run(a, b, splitKeys(v.GetStringSlice("key")), opt)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		logger.Warn().Str("kind", string(w.Kind)).Str("table", w.Table).Ints("rows", w.Rows).Strs("columns", w.Columns).Msg(w.Message)
	}

	if out := v.GetString("out"); out != "" {
		if err := export.SaveXLSX(out, res.Report); err != nil {
			return err
		}
		logger.Info().Str("path", out).Msg("report written")
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if err := printSummary(stdout, res); err != nil {
		return err
	}
	if col := cmpSvc.NormalizeColumnName(v.GetString("column"), opt); col != "" {
		if err := printDetails(stdout, res.Report, col); err != nil {
			return err
		}
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("compare done")
	return nil
}

func loadFile(path string, opts fileio.ReadOptions) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, err
	}
	defer f.Close()
	return fileio.ReadTable(f, path, opts)
}

// splitKeys lets viper-sourced values ("id,region" from the environment)
// behave like repeated flags.
func splitKeys(in []string) []string {
	var out []string
	for _, s := range in {
		for _, k := range strings.Split(s, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
	}
	return out
}

func printSummary(w io.Writer, res model.Result) error {
	fmt.Fprintf(w, "Common keys: %d\n", len(res.Partition.Common))
	fmt.Fprintf(w, "Keys only in first file: %d\n", len(res.Partition.OnlyInA))
	fmt.Fprintf(w, "Keys only in second file: %d\n", len(res.Partition.OnlyInB))
	if len(res.ColumnsOnlyInA) > 0 {
		fmt.Fprintf(w, "Columns only in first file: %s\n", strings.Join(res.ColumnsOnlyInA, ", "))
	}
	if len(res.ColumnsOnlyInB) > 0 {
		fmt.Fprintf(w, "Columns only in second file: %s\n", strings.Join(res.ColumnsOnlyInB, ", "))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Column\tDifferences")
	for _, c := range res.Summary {
		fmt.Fprintf(tw, "%s\t%d\n", c.Column, c.Differences)
	}
	return tw.Flush()
}

func printDetails(w io.Writer, rep model.Report, col string) error {
	details, err := rep.FilterByColumn(col)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nDetails for %s (%d)\n", col, len(details))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", rep.KeyColumn, col, model.ExplanationColumn(col))
	for _, d := range details {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Key, d.Value, d.Explanation)
	}
	return tw.Flush()
}
