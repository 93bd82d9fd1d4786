package goCred

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const loggerName = "gocred"

// newLogger returns the default logger for cfg. An empty level yields a null logger.
func newLogger(cfg LogConfig, out io.Writer) hclog.Logger {
	if cfg.Level == "" {
		return hclog.NewNullLogger()
	}
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       loggerName,
		Level:      hclog.LevelFromString(cfg.Level),
		Output:     out,
		JSONFormat: strings.EqualFold(cfg.Format, "json"),
	})
}
