package cmd

import (
	"storefront/repository"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the SQL schema",
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

		gs, ok := a.store.(*repository.GormStore)
		if !ok {
			a.logger.Info("store.driver is memory, nothing to migrate")
			return nil
		}
		if err := gs.AutoMigrate(cmd.Context()); err != nil {
			return err
		}
		a.logger.Info("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
