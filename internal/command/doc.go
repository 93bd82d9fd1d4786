// Package command defines the gocred command-line tool on urfave/cli/v2.
//
// Every command shares one Toolkit built in the App's Before hook from --config (YAML),
// GOCRED_ environment variables and --log-level, and closed in After.
package command
