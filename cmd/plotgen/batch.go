package main

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gogpu/plotgen/algorithm"
)

func (a *app) batchCmd() *cobra.Command {
	var paramsFile, outFile, seedList string
	cmd := &cobra.Command{
		Use:     "batch <algorithm>",
		Short:   "Generate paths for several seeds in parallel",
		Example: `  plotgen batch flowfield --seeds 1,2,3 --workers 4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			seeds, err := parseSeeds(seedList)
			if err != nil {
				return err
			}
			params, err := loadParams(paramsFile)
			if err != nil {
				return err
			}
			field, err := a.settings.field()
			if err != nil {
				return err
			}
			reg := algorithm.NewRegistry()
			id, b := args[0], a.settings.bounds()
			if _, ok := reg.Lookup(id); !ok {
				return userErrorf("%w: %q", algorithm.ErrUnknownAlgorithm, id)
			}

			jobs := make([]algorithm.Job, len(seeds))
			for i, s := range seeds {
				jobs[i] = algorithm.Job{ID: id, Params: params, Seed: s, Bounds: b}
			}
			batchID := uuid.NewString()
			a.log.Info("batch", "run_id", batchID, "algorithm", id, "jobs", len(jobs), "workers", a.settings.Workers)

			docs := make([]document, 0, len(jobs))
			var errs []error
			for _, r := range algorithm.GenerateBatch(reg, field, jobs, a.settings.Workers) {
				if r.Err != nil {
					errs = append(errs, r.Err)
					continue
				}
				docs = append(docs, document{
					RunID:     uuid.NewString(),
					Algorithm: id,
					Seed:      r.Job.Seed,
					Bounds:    newBoundsJSON(b),
					Paths:     encodePaths(r.Result.Paths),
					Helpers:   encodePaths(r.Result.Helpers),
				})
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}
			return a.write(outFile, docs)
		},
	}
	canvasFlags(cmd)
	cmd.Flags().StringVar(&seedList, "seeds", "", "comma separated seeds")
	cmd.Flags().Int("workers", 0, "parallel workers (default: GOMAXPROCS)")
	cmd.Flags().StringVar(&paramsFile, "params", "", "algorithm params file")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")
	return cmd
}
