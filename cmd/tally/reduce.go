package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/internal/detect"
	"github.com/dkoosis/tally/pkg/result"
)

func (a *app) reduceCmd() *cobra.Command {
	var runs bool
	cmd := &cobra.Command{
		Use:   "reduce [RESULT...]",
		Short: "Print the verdict of a set of step results",
		Long: `Reduce combines step results (SUCCESS, FAILURE, IGNORED, SKIPPED,
PENDING, ERROR) into a single verdict. Results are read from the arguments,
or from stdin when none are given. With --runs the values are treated as
whole test runs and aggregated instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words := args
			if len(words) == 0 {
				var err error
				if words, err = a.readResultList(); err != nil {
					return err
				}
			}

			results := make([]result.Result, 0, len(words))
			for _, w := range words {
				r, err := result.Parse(w)
				if err != nil {
					return &exitError{code: 2, err: err}
				}
				results = append(results, r)
			}

			verdict := result.Reduce(results)
			if runs {
				verdict = result.Aggregate(results)
			}
			fmt.Fprintln(a.stdout, verdict)
			if result.IsFailure(verdict) {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&runs, "runs", false, "Aggregate the values as test runs")
	return cmd
}

// readResultList reads whitespace-separated result names from stdin. Empty
// input is an empty list.
func (a *app) readResultList() ([]string, error) {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	if detect.Sniff(data) != detect.ResultList {
		return nil, usageError("stdin is not a list of results")
	}
	return strings.Fields(string(data)), nil
}
