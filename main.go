package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/probedock/probedock-demo-go/framework"
	"github.com/probedock/probedock-demo-go/logging"
	"github.com/probedock/probedock-demo-go/probedock"
	"github.com/probedock/probedock-demo-go/specs"
)

// maxExitStatus is the largest status a process can portably exit with.
const maxExitStatus = 255

func main() {
	app := cli.NewApp()
	app.Name = "probedock-demo"
	app.Usage = "Run the demo test suites and publish the results to Probe Dock"
	app.Flags = cliFlags
	app.DisableSliceFlagSeparator = true
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	params, err := readParams(c)
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, "probedock", logging.Options{Level: params.logLevel})
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	config, err := probedock.LoadConfig(params.configPath)
	if err != nil {
		log.Error().Err(err).Msg("Cannot run the tests without a valid Probe Dock configuration")
		return cli.Exit("", 1)
	}

	var submitter probedock.Submitter
	if params.noPublish || !config.PublishEnabled() {
		log.Debug().Msg("Publishing is disabled")
	} else {
		submitter = probedock.NewClient(config, nil)
	}

	acc := probedock.NewAccumulator(config.Category(), time.Now())
	adapter := probedock.NewAdapter(acc, probedock.NewFlusher(params.dumpPath, submitter, log), log)

	debugLogger := framework.NullLogger()
	if params.debugAll {
		runnerLog := log.With().Str("component", "runner").Logger()
		debugLogger = &runnerLog
	}

	console := &consoleTestLogger{
		out:                  os.Stdout,
		debugOutputOnFailure: params.debug || params.debugAll,
		debugOutputOnSuccess: params.debugAll,
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	runner := framework.NewRunner(framework.RunnerOptions{
		Filter:         params.filters.AsFilter,
		Listener:       framework.Listeners{console, adapter},
		DefaultTimeout: params.timeout,
		DebugLogger:    debugLogger,
	})

	log.Info().Str("project", config.Project.APIID).Str("version", config.Project.Version).Msg("Running test suite")
	started := time.Now()
	results := specs.RunTestSuite(runner)
	elapsed := time.Since(started)

	drainCtx, cancelDrain := context.WithTimeout(c.Context, params.drainTimeout)
	if err := runner.Quiesce(drainCtx); err != nil {
		log.Warn().Err(err).Msg("Reporting before every timed-out test has finished")
	}
	cancelDrain()

	submitCtx, cancelSubmit := context.WithTimeout(c.Context, params.submitTimeout)
	code, err := adapter.Shutdown(submitCtx)
	cancelSubmit()
	if err != nil {
		log.Warn().Err(err).Msg("Test results were not fully reported")
	}

	fmt.Println()
	printSummary(os.Stdout, results, elapsed)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Println("  " + rerunCommand(os.Args[0], params, failedTestIDs(results)))
	}

	if status := exitStatus(code); status != 0 {
		return cli.Exit("", status)
	}
	return nil
}

func exitStatus(failures int) int {
	if failures > maxExitStatus {
		return maxExitStatus
	}
	return failures
}
