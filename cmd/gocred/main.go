// Command gocred exposes the credential toolkit on the command line.
package main

import (
	"fmt"
	"os"

	"github.com/MrEthical07/goCred/internal/command"
)

func main() {
	if err := command.App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
