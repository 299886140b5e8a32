//go:build !release

package main

import (
	"os"
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

// glCheck aborts with the caller's location if the last GL calls raised an
// error. Release builds compile it out.
func glCheck() {
	e := gl.GetError()
	if e == gl.NO_ERROR {
		return
	}
	pc, file, line, _ := runtime.Caller(1)
	function := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	logger.Error("GL assertion failed",
		"file", file,
		"line", line,
		"function", function,
		"error", glErrorString(e))
	os.Exit(1)
}
