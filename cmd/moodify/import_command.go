package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/moodify/internal/catalog"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a CSV catalog into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.config.Catalog.DatabaseURL == "" {
				return errors.New("catalog.database_url (or DATABASE_URL) is required for import")
			}
			path := strings.TrimSpace(csvPath)
			if path == "" {
				path = ctx.config.Catalog.Path
			}

			list, stats, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}

			database, err := ctx.db(cmd.Context())
			if err != nil {
				return err
			}
			if err := database.Songs().UpsertBatch(cmd.Context(), list); err != nil {
				return err
			}
			total, err := database.Songs().Count(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %d songs from %s (%d rows, %d skipped, %d duplicates). Catalog now holds %d songs.\n",
				stats.Loaded, path, stats.Rows, stats.Skipped, stats.Duplicates, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to import (defaults to catalog.path)")
	return cmd
}
