package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justestif/moodify/internal/atlas"
)

func newAtlasCommand(ctx *commandContext) *cobra.Command {
	var clusters, minSize int

	cmd := &cobra.Command{
		Use:   "atlas",
		Short: "Group the catalog into mood clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := atlas.Config{
				Clusters: ctx.config.Atlas.Clusters,
				MinSize:  ctx.config.Atlas.MinSize,
			}
			if clusters > 0 {
				cfg.Clusters = clusters
			}
			if minSize > 0 {
				cfg.MinSize = minSize
			}

			cat, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			result, err := atlas.Build(cat.All(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Groups) == 0 {
				fmt.Fprintf(out, "Not enough songs to build groups (%d songs, %d clusters)\n", cat.Len(), cfg.Clusters)
				return nil
			}

			rows := make([][]string, len(result.Groups))
			for i, g := range result.Groups {
				dominant := "-"
				if g.Dominant != "" {
					dominant = fmt.Sprintf("%s (%d)", g.Dominant, g.Matches)
				}
				rows[i] = []string{
					g.Name,
					strconv.Itoa(len(g.Songs)),
					dominant,
					formatFeature(g.Centroid["energy"]),
					formatFeature(g.Centroid["valence"]),
					atlas.Describe(g.Centroid),
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Group", "Songs", "Dominant mood", "Energy", "Valence", "Description"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d groups, %d outliers, %d songs\n", len(result.Groups), len(result.Outliers), result.Total())
			return nil
		},
	}

	cmd.Flags().IntVar(&clusters, "clusters", 0, "Number of clusters (overrides atlas.clusters)")
	cmd.Flags().IntVar(&minSize, "min-size", 0, "Smallest group kept (overrides atlas.min_size)")
	return cmd
}
