package config

import (
	"flag"
	"io"
)

type flags struct {
	set *flag.FlagSet

	config   string
	debug    bool
	assets   string
	out      string
	atlas    int
	workers  int
	pretty   bool
	logFile  string
	logLevel string
	write    string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: flag.NewFlagSet("webmc-mesh", flag.ContinueOnError)}
	f.set.SetOutput(io.Discard)

	f.set.StringVar(&f.config, "config", "", "Path to config file")
	f.set.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	f.set.StringVar(&f.assets, "assets", "", "Resource pack assets directory")
	f.set.StringVar(&f.out, "out", "", "Output file (default stdout)")
	f.set.IntVar(&f.atlas, "atlas", 0, "Atlas cells per side")
	f.set.IntVar(&f.workers, "workers", 0, "Parallel build workers")
	f.set.BoolVar(&f.pretty, "pretty", false, "Indent JSON output")
	f.set.StringVar(&f.logFile, "log-file", "", "Also log to this file")
	f.set.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.set.StringVar(&f.write, "write-config", "", "Write the effective config to this path")

	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply applies CLI flag overrides to the config.
func (f *flags) apply(cfg *Config) {
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.logFile != "" {
		cfg.Logging.LogFile = f.logFile
	}
	if f.assets != "" {
		cfg.Assets.Path = f.assets
	}
	if f.out != "" {
		cfg.Output.Path = f.out
	}
	if f.atlas > 0 {
		cfg.Atlas.Size = f.atlas
	}
	if f.workers > 0 {
		cfg.Meshing.Workers = f.workers
	}
	if f.pretty {
		cfg.Output.Pretty = true
	}
	cfg.WriteConfig = f.write
}
