package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// New returns a tint backed logger writing to stderr. Colour is disabled when
// stderr is not a terminal.
func New(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer
	noColor := false
	if runtime.GOOS == "windows" {
		w = colorable.NewColorableStderr()
	} else {
		w = os.Stderr
		noColor = !isatty.IsTerminal(os.Stderr.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

// Err wraps err for colourised output
func Err(err error) slog.Attr {
	return tint.Err(err)
}
