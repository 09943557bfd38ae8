package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m-blaha/dbox/internal/clone"
	"github.com/m-blaha/dbox/internal/provider/github"
	"github.com/m-blaha/dbox/internal/reference"
	"github.com/m-blaha/dbox/internal/resolver"
)

var (
	cloneRecursive bool
	cloneDryRun    bool
)

var cloneCmd = &cobra.Command{
	Use:   "clone <pull-request>...",
	Short: "Clone pull requests and their declared dependencies",
	Long: `Resolve the dependency closure of one or more pull requests and hand
each resulting URL to the external clone command, one invocation per URL.

Pull requests are given as full URLs or as the short org/repo#number form.
Dependencies come from "Requires:"/"Tests:" annotation lines in the PR
description, or in the newest matching comment when the description has
none. A failed clone does not stop the remaining ones.`,
	Example: `  dbox clone https://github.com/rpm-software-management/dnf/pull/123
  dbox clone --recursive rpm-software-management/libdnf#42
  dbox clone --dry-run org/repo#7 org/repo#8`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		res := resolver.New(github.NewBackend(appConfig.ResolveToken()))
		deps, err := res.Resolve(ctx, args, cloneRecursive)
		if err != nil {
			return err
		}

		targets, err := cloneTargets(args, deps)
		if err != nil {
			return err
		}

		if cloneDryRun {
			for _, ref := range targets {
				fmt.Fprintln(cmd.OutOrStdout(), ref.URL())
			}
			return nil
		}

		runner := clone.NewRunner(appConfig.Clone)
		failed, err := runner.CloneAll(ctx, targets)
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d clones failed", failed, len(targets))
		}
		return nil
	},
}

func init() {
	cloneCmd.Flags().BoolVarP(&cloneRecursive, "recursive", "r", false, "Follow dependencies of dependencies")
	cloneCmd.Flags().BoolVar(&cloneDryRun, "dry-run", false, "Print the clone plan without running anything")
	rootCmd.AddCommand(cloneCmd)
}

// cloneTargets merges the requested references with their resolved
// dependencies into one deduplicated, sorted clone plan.
func cloneTargets(inputs []string, deps []reference.PullRequest) ([]reference.PullRequest, error) {
	set := make(map[reference.PullRequest]struct{}, len(inputs)+len(deps))
	for _, input := range inputs {
		ref, err := reference.Parse(input)
		if err != nil {
			return nil, err
		}
		set[ref] = struct{}{}
	}
	for _, dep := range deps {
		set[dep] = struct{}{}
	}

	targets := make([]reference.PullRequest, 0, len(set))
	for ref := range set {
		targets = append(targets, ref)
	}
	reference.Sort(targets)
	return targets, nil
}
