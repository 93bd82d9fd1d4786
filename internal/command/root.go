package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"

	goCred "github.com/MrEthical07/goCred"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const toolkitKey = "toolkit"

var errNoToolkit = errors.New("toolkit not initialised")

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gocred",
		Usage:   "credential primitives: secrets, bcrypt, signed tokens, device tokens",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SecretCommand(),
			HashCommand(),
			CompareCommand(),
			SignCommand(),
			VerifyCommand(),
			DecodeCommand(),
			DeviceCommand(),
			CheckCommand(),
			ReportCommand(),
			BenchCommand(),
		},
		Before: setup,
		After:  teardown,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{"GOCRED_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "log level: trace, debug, info, warn, error (empty disables logging)",
			EnvVars: []string{"GOCRED_LOG_LEVEL"},
		},
	}
}

func setup(c *cli.Context) error {
	cfg, err := goCred.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := hclog.NewNullLogger()
	if cfg.Log.Level != "" {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:       "gocred",
			Level:      hclog.LevelFromString(cfg.Log.Level),
			Output:     c.App.ErrWriter,
			JSONFormat: cfg.Log.Format == "json",
		})
	}

	tk, err := goCred.New().
		WithConfig(cfg).
		WithLogger(logger).
		WithAuditSink(goCred.NewHclogSink(logger)).
		Build()
	if err != nil {
		return fmt.Errorf("build toolkit: %w", err)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[toolkitKey] = tk
	return nil
}

func teardown(c *cli.Context) error {
	if tk, ok := c.App.Metadata[toolkitKey].(*goCred.Toolkit); ok {
		tk.Close()
	}
	return nil
}

func toolkit(c *cli.Context) (*goCred.Toolkit, error) {
	tk, ok := c.App.Metadata[toolkitKey].(*goCred.Toolkit)
	if !ok || tk == nil {
		return nil, errNoToolkit
	}
	return tk, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireArgs(c *cli.Context, n int, usage string) error {
	if c.NArg() != n {
		return fmt.Errorf("usage: gocred %s %s", c.Command.Name, usage)
	}
	return nil
}
