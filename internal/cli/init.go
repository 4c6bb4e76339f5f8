package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/config"
	"github.com/example/fieldops/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var actorID string
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the fieldops database",
		Long:  `Initialize the fieldops database at ~/.fieldops/fieldops.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing fieldops database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if seed {
				database, err := db.GetDB()
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Demo fixtures seeded")
			}

			if actorID != "" {
				cfg := &config.Config{Version: "1", ActorUserID: actorID}
				if err := config.SaveConfig(".", cfg); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Printf("✓ Default actor %s saved to .fieldops/config.json\n", actorID)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  fieldops user create --email you@example.com --name \"You\" --role admin")
			fmt.Println("  fieldops status")

			return nil
		},
	}

	cmd.Flags().StringVar(&actorID, "actor-id", "", "Save a default acting user to the local config")
	cmd.Flags().BoolVar(&seed, "seed", false, "Seed demo users, properties and a job")

	return cmd
}
