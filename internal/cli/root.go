package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m-blaha/dbox/internal/config"
	"github.com/m-blaha/dbox/internal/logging"
)

var (
	verbose   bool
	appConfig *config.Config

	rootCmd = &cobra.Command{
		Use:   "dbox",
		Short: "Clone pull requests together with everything they require",
		Long: `Dbox resolves the dependency closure of a pull request from the
"Requires:" and "Tests:" annotations in its description and comments,
then clones the whole set of pull requests for review.`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose)

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg
		return nil
	}
	rootCmd.SilenceUsage = true
}

func Execute() error {
	return rootCmd.Execute()
}
