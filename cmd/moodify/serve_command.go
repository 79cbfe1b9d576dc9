package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/justestif/moodify/internal/atlas"
	"github.com/justestif/moodify/internal/web"
	webfs "github.com/justestif/moodify/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and song API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if addr != "" {
				cfg.Server.Addr = addr
			}

			cat, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			history, err := ctx.newHistory(cmd.Context())
			if err != nil {
				return err
			}
			finder, err := ctx.newFinder(cmd.Context(), cat)
			if err != nil {
				return err
			}
			cls := ctx.newClassifier()
			svc := ctx.newService(cmd.Context(), cls, finder, history)

			templates, err := fs.Sub(webfs.TemplatesFS, "templates")
			if err != nil {
				return fmt.Errorf("creating templates filesystem: %w", err)
			}
			static, err := fs.Sub(webfs.StaticFS, "static")
			if err != nil {
				return fmt.Errorf("creating static filesystem: %w", err)
			}

			server, err := web.NewServer(web.ServerConfig{
				Addr:        cfg.Server.Addr,
				TemplatesFS: templates,
				StaticFS:    static,
				Service:     svc,
				Classifier:  cls,
				Catalog:     cat,
				History:     history,
				Atlas:       atlas.Config{Clusters: cfg.Atlas.Clusters, MinSize: cfg.Atlas.MinSize},
				Logger:      ctx.log(),
			})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			return server.Run()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
