package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/MrEthical07/goCred/validate"
)

// CheckCommand runs the format validators.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Check the format of a password, bcrypt hash, JWT or device id",
		Subcommands: []*cli.Command{
			checkSubcommand("password", "password strength policy", validate.Password),
			checkSubcommand("bcrypt", "bcrypt hash shape", validate.BcryptHash),
			checkSubcommand("jwt", "three base64url segments", validate.JWT),
			checkSubcommand("device-id", "canonical UUID", validate.DeviceID),
		},
	}
}

func checkSubcommand(name, usage string, fn func(string, ...validate.Option) (bool, error)) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Check " + usage,
		ArgsUsage: "<value>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<value>"); err != nil {
				return err
			}
			if _, err := fn(c.Args().First()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(c.App.Writer, "valid")
			return err
		},
	}
}
