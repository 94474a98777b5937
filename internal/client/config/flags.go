package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/affiliate/internal/flagx"
)

// parseFlags overlays cfg with -a, -p, -d and -l. Other arguments are left
// to their own stages.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the affiliate API")
	fs.StringVar(&cfg.PublicBaseURL, "p", cfg.PublicBaseURL, "public base URL for affiliate links")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
