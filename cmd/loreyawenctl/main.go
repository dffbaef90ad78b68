// Command loreyawenctl is an operator CLI around the loreyawen codec: it
// seals and opens single frames from the command line, reading session
// material from a config file. It is a thin wrapper — the core
// codec package has no CLI or I/O of its own (spec.md §6) — grounded on
// the operator-binary shape of kgiusti-go-fdo-server's cmd package.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("loreyawenctl: command failed")
		os.Exit(1)
	}
}
