package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// HashCommand hashes a password with the configured bcrypt cost.
func HashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "Hash a password with bcrypt",
		ArgsUsage: "<password>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<password>"); err != nil {
				return err
			}
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			h, err := tk.HashPassword(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, h)
			return err
		},
	}
}

// CompareCommand checks a password against a bcrypt hash.
func CompareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare a password with a bcrypt hash",
		ArgsUsage: "<password> <hash>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2, "<password> <hash>"); err != nil {
				return err
			}
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			res, err := tk.ComparePassword(c.Context, c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(c.App.Writer, "match"); err != nil {
				return err
			}
			if res.Rehash != "" {
				_, err = fmt.Fprintf(c.App.Writer, "rehash: %s\n", res.Rehash)
			}
			return err
		},
	}
}
