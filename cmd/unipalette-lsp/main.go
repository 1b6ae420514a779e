package main

import (
	"os"

	"github.com/jsvensson/unipalette/internal/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var (
	flagVerbose int
	flagLog     string
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "unipalette-lsp",
	Short:   "Language server for palette files, speaking LSP on stdin and stdout",
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var path *string
		if flagLog != "" {
			path = &flagLog
		}
		commonlog.Configure(flagVerbose, path)
		return lsp.NewServer(version).Run()
	},
}

func init() {
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "log more (can be repeated)")
	rootCmd.Flags().StringVar(&flagLog, "log", "", "log to this file instead of stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
