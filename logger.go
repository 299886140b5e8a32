package main

import (
	"io"
	"log/slog"

	"github.com/cellux/infiniboard/internal/logging"
)

var logger = slog.Default()

func InitLogger(w io.Writer, level string) error {
	l, err := logging.New(w, level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
