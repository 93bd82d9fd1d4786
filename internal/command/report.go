package command

import (
	"github.com/urfave/cli/v2"
)

// ReportCommand prints the effective security posture of the loaded configuration.
func ReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print the effective security report as JSON",
		Action: func(c *cli.Context) error {
			tk, err := toolkit(c)
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, tk.SecurityReport())
		},
	}
}
