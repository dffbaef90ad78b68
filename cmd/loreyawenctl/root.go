package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string
var storeConfigFile string

var rootCmd = &cobra.Command{
	Use:   "loreyawenctl",
	Short: "Seal and open proprietary LoRaWAN-derived frames from the command line",
	Long: `loreyawenctl is an operator tool around the loreyawen codec library.
It seals plaintext into a sealed frame, or opens a sealed frame back into
plaintext, using session material from a config file.

By default the frame counter is tracked only for the lifetime of one
invocation. Pass --store-config to persist it (and the session's wrapped
keys) across invocations in Redis or a SQL database instead.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a loreyawenctl config file")
	rootCmd.PersistentFlags().StringVar(&storeConfigFile, "store-config", "",
		"path to a store backend config file; omit for an ephemeral in-memory session")
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(openCmd)
}
