package command

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"
)

// SecretCommand prints a fresh sign secret, or --bytes n random bytes as hex.
func SecretCommand() *cli.Command {
	return &cli.Command{
		Name:  "secret",
		Usage: "Generate a sign secret or random bytes",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "bytes",
				Usage: "draw n random bytes instead of a sign secret",
			},
		},
		Action: func(c *cli.Context) error {
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			if n := c.Int("bytes"); c.IsSet("bytes") {
				b, err := tk.RandomBytes(n)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, hex.EncodeToString(b))
				return err
			}
			s, err := tk.GenerateSignSecret()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, s)
			return err
		},
	}
}
