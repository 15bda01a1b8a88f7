package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(exitCode(err))
	}
}
