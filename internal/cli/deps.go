package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/m-blaha/dbox/internal/provider/github"
	"github.com/m-blaha/dbox/internal/resolver"
)

var (
	depsRecursive bool
	depsPlain     bool
)

var depsCmd = &cobra.Command{
	Use:   "deps <pull-request>...",
	Short: "Show the resolved dependencies of pull requests",
	Long: `Resolve the dependency closure of one or more pull requests and print
it without cloning anything. The starting pull requests themselves are not
part of the output.`,
	Example: `  dbox deps https://github.com/org/repo/pull/42
  dbox deps --recursive org/repo#42
  dbox deps --plain org/repo#42`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := resolver.New(github.NewBackend(appConfig.ResolveToken()))
		deps, err := res.Resolve(cmd.Context(), args, depsRecursive)
		if err != nil {
			return err
		}

		if len(deps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No dependencies declared.")
			return nil
		}

		if depsPlain {
			for _, ref := range deps {
				fmt.Fprintln(cmd.OutOrStdout(), ref.URL())
			}
			return nil
		}

		headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cellStyle := lipgloss.NewStyle().Padding(0, 1)

		rows := make([][]string, 0, len(deps))
		for _, ref := range deps {
			rows = append(rows, []string{ref.Org, ref.Repo, strconv.Itoa(ref.Number), ref.URL()})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ORG", "REPO", "PR", "URL").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	depsCmd.Flags().BoolVarP(&depsRecursive, "recursive", "r", false, "Follow dependencies of dependencies")
	depsCmd.Flags().BoolVar(&depsPlain, "plain", false, "Print plain URLs instead of a table")
	rootCmd.AddCommand(depsCmd)
}
