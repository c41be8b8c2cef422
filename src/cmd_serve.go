package main

import (
	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/pokedex/src/server"
	"github.com/BielosX/wombat/pokedex/src/views"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the list and detail pages over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		srv := server.New(newPokeAPIClient(cfg, sugar), sugar, listOptions(), detailOptions())
		return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func listOptions() views.ListOptions {
	return views.ListOptions{
		Offset:      cfg.List.Offset,
		Limit:       cfg.List.Limit,
		Concurrency: cfg.List.Concurrency,
	}
}

func detailOptions() views.DetailOptions {
	return views.DetailOptions{Language: cfg.Detail.Language}
}
