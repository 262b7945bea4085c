package config

import (
	"flag"
	"os"
	"time"

	"github.com/avoronin/daybook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the journal backend (default from Config)
//	-d string   path of the local database file (default from Config)
//	-q int      autosave quiet period in seconds (default from Config)
//	-l string   locale for greeting generation (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-q", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the journal backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database file")
	quiet := fs.Int("q", int(cfg.AutosaveQuietPeriod.Seconds()), "autosave quiet period (in seconds)")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "locale for greeting generation")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AutosaveQuietPeriod = time.Duration(*quiet) * time.Second
}
