// Package cmd implements the imc command line application, that projects the
// cashflow of a real estate portfolio.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/etnz/immo/config"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups() {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

type group struct {
	name     string
	commands []subcommands.Command
}

// groups returns the application commands, in help order.
func groups() []group {
	return []group{
		{"projection", []subcommands.Command{&snapshotCmd{}, &echeancesCmd{}, &scheduleCmd{}}},
		{"index", []subcommands.Command{&inseeCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}}},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv("IMMO_CONFIG"), "Path to the YAML configuration file (IMMO_CONFIG)")

// stdout receives the command results, logs go to stderr.
var stdout io.Writer = os.Stdout

var (
	loadOnce sync.Once
	cfg      *config.Config
	cfgErr   error
)

// loadConfig returns the validated application configuration.
func loadConfig() (*config.Config, error) {
	loadOnce.Do(func() {
		cfg, cfgErr = config.Load(*configFile)
		if cfgErr == nil {
			cfgErr = cfg.Validate()
		}
		if cfgErr != nil {
			cfgErr = fmt.Errorf("invalid configuration: %w", cfgErr)
		}
	})
	return cfg, cfgErr
}

// setup loads the configuration and its logger. On error it is reported and
// the returned status must be used as the command exit status.
func setup() (*config.Config, *logrus.Logger, subcommands.ExitStatus) {
	c, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	return c, c.Logger(), subcommands.ExitSuccess
}
