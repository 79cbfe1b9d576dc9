package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/mood"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	var moodFlag string
	var limit int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List catalog songs whose audio features match a mood",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := mood.Parse(moodFlag)
			if err != nil {
				return err
			}
			cat, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			matched := mood.Filter(cat.All(), e)
			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				fmt.Fprintf(out, "No songs found for emotion: %s\n", e)
				return nil
			}

			shown := matched
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			fmt.Fprintln(out, renderTable(browseHeaders, browseRows(shown), browseAligns))
			fmt.Fprintf(out, "Showing %d of %d %s songs (%d in catalog)\n", len(shown), len(matched), e, cat.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&moodFlag, "mood", "m", "", "Mood to browse (joy, sadness, anger, fear, disgust)")
	cmd.Flags().IntVarP(&limit, "limit", "n", mood.DefaultLimit, "Maximum songs to list (0 for all)")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

var browseHeaders = []string{
	"Track", "Artists", "Danceability", "Energy", "Loudness", "Speechiness",
	"Acousticness", "Instrumentalness", "Liveness", "Valence",
}

var browseAligns = []columnAlignment{
	alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight,
	alignRight, alignRight, alignRight, alignRight,
}

func browseRows(list []catalog.Song) [][]string {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{
			s.TrackName,
			s.Artists,
			formatFeature(s.Danceability),
			formatFeature(s.Energy),
			formatFeature(s.Loudness),
			formatFeature(s.Speechiness),
			formatFeature(s.Acousticness),
			formatFeature(s.Instrumentalness),
			formatFeature(s.Liveness),
			formatFeature(s.Valence),
		}
	}
	return rows
}

func formatFeature(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
