package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cellux/infiniboard/internal/board"
)

func main() {
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()
	if err := InitLogger(os.Stderr, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	err := WithGL("infiniboard", CreateApp())
	switch {
	case err == nil:
	case errors.Is(err, board.ErrCapacity):
		logger.Error("out of stroke memory", "error", err)
		os.Exit(1)
	default:
		// setup failures are reported but do not change the exit status
		logger.Error("failed to initialise", "error", err)
	}
}
