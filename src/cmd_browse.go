package main

import (
	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/pokedex/src/router"
	"github.com/BielosX/wombat/pokedex/src/tui"
)

var (
	logFile   string
	startPath string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the Pokédex in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), newPokeAPIClient(cfg, sugar), sugar, tui.Options{
			List:   listOptions(),
			Detail: detailOptions(),
			Start:  startPath,
		})
	},
}

func init() {
	browseCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while browsing")
	browseCmd.Flags().StringVar(&startPath, "start", router.ListPath, "Route to open first, e.g. /pokemon/25")
}
