package main

import (
	"errors"
	"fmt"
	"os"

	"alarm-bridge/internal/app"
	"alarm-bridge/internal/logging"
)

// main is the entry point for the alarm-bridge command line tool.
func main() {
	runner := app.NewAppRunner()

	err := runner.Run(os.Args[1:])
	if err == nil {
		return
	}

	if errors.Is(err, app.ErrUsage) || errors.Is(err, app.ErrMissingArgs) {
		fmt.Fprintln(os.Stderr, "")
		runner.Usage(os.Stderr)
	}

	// The error must be seen even when logging was silenced by --log-level.
	if logging.GetLevel() < logging.Error {
		logging.SetLevel(logging.Error)
	}
	logging.Logf(logging.Error, "alarm-bridge failed: %v", err)
	os.Exit(app.ExitCode(err))
}
