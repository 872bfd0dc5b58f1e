package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tabcompare-service/internal/sample"
)

func newSampleCmd(stdout io.Writer) *cobra.Command {
	var (
		dir      string
		rows     int
		seed     int64
		diffRate float64
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a pair of related CSV files to try the comparison on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := sample.Generate(sample.Options{Rows: rows, Seed: seed, DiffRate: diffRate})
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			for name, records := range map[string][][]string{"a.csv": p.A, "b.csv": p.B} {
				if err := writeCSVFile(filepath.Join(dir, name), records); err != nil {
					return err
				}
			}
			fmt.Fprintf(stdout, "Wrote %s and %s (%d and %d rows)\n",
				filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv"), len(p.A)-1, len(p.B)-1)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&dir, "out-dir", ".", "directory for a.csv and b.csv")
	f.IntVar(&rows, "rows", 100, "rows of the first file")
	f.Int64Var(&seed, "seed", 0, "random seed (0: random)")
	f.Float64Var(&diffRate, "diff-rate", 0.2, "share of rows changed in the second file")
	return cmd
}

func writeCSVFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sample.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
