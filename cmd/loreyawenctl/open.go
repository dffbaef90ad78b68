package main

import (
	"encoding/hex"
	"fmt"

	"github.com/kizzycode/loreyawen"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var openDirection string

var openCmd = &cobra.Command{
	Use:   "open [hex-frame]",
	Short: "Open a sealed frame (hex-encoded) back into plaintext",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSessionConfig(cfgFile)
		if err != nil {
			return err
		}
		session, err := loadSession(cmd.Context(), cfg, storeConfigFile)
		if err != nil {
			return err
		}

		direction, err := parseDirection(openDirection)
		if err != nil {
			return err
		}

		frameBytes, err := hex.DecodeString(args[0])
		if err != nil {
			return errors.Wrap(err, "loreyawenctl: invalid hex frame")
		}

		aesImpl := loreyawen.NewStdAES128()
		plaintext, err := loreyawen.Open(aesImpl, session, direction, frameBytes)
		if err != nil {
			return errors.Wrap(err, "loreyawenctl: open")
		}

		fmt.Println(string(plaintext))
		return nil
	},
}

func init() {
	openCmd.Flags().StringVar(&openDirection, "direction", "uplink", "uplink or downlink")
}
