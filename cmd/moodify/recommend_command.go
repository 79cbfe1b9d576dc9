package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/moodify/internal/recommend"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <text...>",
		Short: "Recommend songs for a mood description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			finder, err := ctx.newFinder(cmd.Context(), nil)
			if err != nil {
				return err
			}
			history, err := ctx.newHistory(cmd.Context())
			if err != nil {
				return err
			}
			svc := ctx.newService(cmd.Context(), ctx.newClassifier(), finder, history)

			rec, err := svc.Recommend(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return errors.New(recommend.UserMessage(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%.0f%% confidence)\n", rec.Emotion, rec.Confidence*100)

			rows := make([][]string, len(rec.Tracks))
			for i, t := range rec.Tracks {
				rows[i] = []string{strconv.Itoa(i + 1), t.Name, t.Artists, t.SpotifyURL()}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Track", "Artists", "Link"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}
