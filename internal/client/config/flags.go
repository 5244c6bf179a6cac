package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/insider/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     backend base URL
//	-t duration   request timeout, e.g. 10s
//	-d string     path of the local database
//	-p int        list page size
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other
// components (-c, -e) do not cause parse errors.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "list page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
