package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/plotgen/algorithm"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available algorithms",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			reg := algorithm.NewRegistry()
			title := cases.Title(language.English)
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, id := range reg.IDs() {
				alg, _ := reg.Lookup(id)
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, title.String(alg.Name), alg.Description)
			}
			return w.Flush()
		},
	}
}

func (a *app) formulaCmd() *cobra.Command {
	var paramsFile string
	cmd := &cobra.Command{
		Use:   "formula <algorithm>",
		Short: "Print the symbolic description of an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			params, err := loadParams(paramsFile)
			if err != nil {
				return err
			}
			f, err := algorithm.NewRegistry().Formula(args[0], params)
			if err != nil {
				return userError{err}
			}
			_, err = fmt.Fprintln(a.out, f)
			return err
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", "", "algorithm params file")
	return cmd
}
