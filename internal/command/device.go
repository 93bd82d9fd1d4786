package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/MrEthical07/goCred/device"
)

// DeviceCommand classifies a push-notification device token.
func DeviceCommand() *cli.Command {
	return &cli.Command{
		Name:      "device",
		Usage:     "Classify a device token as WNS, ADM, GCM or APN",
		ArgsUsage: "<token>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<token>"); err != nil {
				return err
			}
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			tok, err := tk.DeviceToken(c.Context, device.Raw(c.Args().First()))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, tok.Platform())
			return err
		},
	}
}
