package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/flagx"
)

// parseFlags populates cfg from the short flags documented in the package
// comment. Unrelated arguments are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("clinicdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the clinic API")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "session storage path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations are only touched when given, so sub-second values from the
	// JSON file survive.
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "t":
			cfg.RequestTimeout, err = seconds("t", *timeout)
		case "i":
			cfg.OnlineCheckInterval, err = seconds("i", *interval)
		}
	})
	return err
}

func seconds(name string, v int) (time.Duration, error) {
	if v <= 0 {
		return 0, fmt.Errorf("parse flags: -%s must be positive, got %d", name, v)
	}
	return time.Duration(v) * time.Second, nil
}
