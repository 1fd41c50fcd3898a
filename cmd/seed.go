package cmd

import (
	"storefront/config"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample accounts, catalog and reviews",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.close()

		if cfg.Store.Driver == config.DriverMemory {
			a.logger.Warn("seeding the in-memory store only lasts for this process; serve seeds it on startup")
		}
		return a.seed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
