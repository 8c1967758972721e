package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/algorithm"
)

// canvasFlags registers the flags shared by generate and batch.
func canvasFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("width", defaultWidth, "canvas width")
	f.Float64("height", defaultHeight, "canvas height")
	f.Float64("margin", defaultMargin, "canvas margin")
	f.Bool("truncate", false, "clip paths to the inset")
	f.String("noise", "simplex", "noise source (simplex, perlin)")
}

func (a *app) generateCmd() *cobra.Command {
	var paramsFile, outFile string
	cmd := &cobra.Command{
		Use:   "generate <algorithm>",
		Short: "Generate paths for one seed",
		Example: `  plotgen generate lissajous --seed 7
  plotgen generate topo --params topo.yaml --out topo.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			params, err := loadParams(paramsFile)
			if err != nil {
				return err
			}
			field, err := a.settings.field()
			if err != nil {
				return err
			}
			id, b, seed := args[0], a.settings.bounds(), a.settings.Seed
			runID := uuid.NewString()
			a.log.Info("generate", "run_id", runID, "algorithm", id, "seed", seed)

			res, err := algorithm.NewRegistry().Generate(id, params, plotgen.NewRng(seed), field, b)
			if err != nil {
				if errors.Is(err, algorithm.ErrUnknownAlgorithm) {
					return userError{err}
				}
				return err
			}
			return a.write(outFile, document{
				RunID:     runID,
				Algorithm: id,
				Seed:      seed,
				Bounds:    newBoundsJSON(b),
				Paths:     encodePaths(res.Paths),
				Helpers:   encodePaths(res.Helpers),
			})
		},
	}
	canvasFlags(cmd)
	cmd.Flags().Uint64("seed", 0, "random seed")
	cmd.Flags().StringVar(&paramsFile, "params", "", "algorithm params file")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")
	return cmd
}

// write encodes v as JSON to path, or to stdout when path is empty.
// A file that fails to close reports the close error.
func (a *app) write(path string, v any) (err error) {
	var w io.Writer = a.out
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = f
	}
	if err = writeJSON(w, v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
