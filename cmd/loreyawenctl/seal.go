package main

import (
	"encoding/hex"
	"fmt"

	"github.com/kizzycode/loreyawen"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var sealDirection string

var sealCmd = &cobra.Command{
	Use:   "seal [plaintext]",
	Short: "Seal plaintext into a proprietary frame, printed as hex",
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

		direction, err := parseDirection(sealDirection)
		if err != nil {
			return err
		}

		aesImpl := loreyawen.NewStdAES128()
		sealed, err := loreyawen.Seal(aesImpl, session, direction, []byte(args[0]))
		if err != nil {
			return errors.Wrap(err, "loreyawenctl: seal")
		}

		fmt.Println(hex.EncodeToString(sealed))
		return nil
	},
}

func init() {
	sealCmd.Flags().StringVar(&sealDirection, "direction", "uplink", "uplink or downlink")
}

func parseDirection(s string) (loreyawen.Direction, error) {
	switch s {
	case "uplink":
		return loreyawen.Uplink, nil
	case "downlink":
		return loreyawen.Downlink, nil
	default:
		return 0, fmt.Errorf("loreyawenctl: unknown direction %q", s)
	}
}
