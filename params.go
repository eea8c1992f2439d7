package main

import (
	"regexp"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/urfave/cli/v2"

	"github.com/probedock/probedock-demo-go/framework"
	"github.com/probedock/probedock-demo-go/logging"
	"github.com/probedock/probedock-demo-go/probedock"
)

const envVarPrefix = "PROBEDOCK_DEMO"

func prefixEnvVar(name string) []string {
	return []string{envVarPrefix + "_" + name}
}

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Value:   probedock.DefaultConfigFile,
		EnvVars: []string{"PROBEDOCK_CONFIG"},
		Usage:   "Path to the Probe Dock configuration file",
	}
	dumpFlag = &cli.StringFlag{
		Name:    "dump",
		Value:   probedock.DefaultSnapshotFile,
		EnvVars: prefixEnvVar("DUMP"),
		Usage:   "Where to save a local copy of the test run; empty to disable",
	}
	runFlag = &cli.StringSliceFlag{
		Name:    "run",
		EnvVars: prefixEnvVar("RUN"),
		Usage:   "Regex pattern(s) to select tests to run",
	}
	skipFlag = &cli.StringSliceFlag{
		Name:    "skip",
		EnvVars: prefixEnvVar("SKIP"),
		Usage:   "Regex pattern(s) to select tests not to run",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Value:   framework.DefaultTimeout,
		EnvVars: prefixEnvVar("TIMEOUT"),
		Usage:   "Default timeout for each test",
	}
	drainTimeoutFlag = &cli.DurationFlag{
		Name:    "drain-timeout",
		Value:   10 * time.Second,
		EnvVars: prefixEnvVar("DRAIN_TIMEOUT"),
		Usage:   "How long to wait for timed-out tests to finish before reporting",
	}
	submitTimeoutFlag = &cli.DurationFlag{
		Name:    "submit-timeout",
		Value:   30 * time.Second,
		EnvVars: prefixEnvVar("SUBMIT_TIMEOUT"),
		Usage:   "How long to wait for the Probe Dock server to accept the results",
	}
	debugFlag = &cli.BoolFlag{
		Name:    "debug",
		EnvVars: prefixEnvVar("DEBUG"),
		Usage:   "Show debug output for failed tests",
	}
	debugAllFlag = &cli.BoolFlag{
		Name:    "debug-all",
		EnvVars: prefixEnvVar("DEBUG_ALL"),
		Usage:   "Show debug output for all tests",
	}
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Value:   logging.DefaultLevel,
		EnvVars: prefixEnvVar("LOG_LEVEL"),
		Usage:   "Lowest level of log messages to show (debug, info, warn, error)",
	}
	noPublishFlag = &cli.BoolFlag{
		Name:    "no-publish",
		EnvVars: prefixEnvVar("NO_PUBLISH"),
		Usage:   "Do not send the results to the Probe Dock server",
	}
)

var cliFlags = []cli.Flag{
	configFlag,
	dumpFlag,
	runFlag,
	skipFlag,
	timeoutFlag,
	drainTimeoutFlag,
	submitTimeoutFlag,
	debugFlag,
	debugAllFlag,
	logLevelFlag,
	noPublishFlag,
}

type commandParams struct {
	configPath    string
	dumpPath      string
	filters       framework.RegexFilters
	timeout       time.Duration
	drainTimeout  time.Duration
	submitTimeout time.Duration
	debug         bool
	debugAll      bool
	logLevel      string
	noPublish     bool
}

func readParams(c *cli.Context) (commandParams, error) {
	p := commandParams{
		configPath:    c.String(configFlag.Name),
		dumpPath:      c.String(dumpFlag.Name),
		timeout:       c.Duration(timeoutFlag.Name),
		drainTimeout:  c.Duration(drainTimeoutFlag.Name),
		submitTimeout: c.Duration(submitTimeoutFlag.Name),
		debug:         c.Bool(debugFlag.Name),
		debugAll:      c.Bool(debugAllFlag.Name),
		logLevel:      c.String(logLevelFlag.Name),
		noPublish:     c.Bool(noPublishFlag.Name),
	}
	for _, pattern := range c.StringSlice(runFlag.Name) {
		if err := p.filters.MustMatch.Set(pattern); err != nil {
			return p, err
		}
	}
	for _, pattern := range c.StringSlice(skipFlag.Name) {
		if err := p.filters.MustNotMatch.Set(pattern); err != nil {
			return p, err
		}
	}
	return p, nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that runs only the given tests again.
func rerunCommand(program string, p commandParams, failed []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	if p.configPath != probedock.DefaultConfigFile {
		b.add("--"+configFlag.Name, p.configPath)
	}
	if p.noPublish {
		b.add("--" + noPublishFlag.Name)
	}
	for _, id := range failed {
		b.add("--"+runFlag.Name, "^"+regexp.QuoteMeta(id.String())+"$")
	}
	return b.String()
}
