package slcan

import "log/slog"

type Opt func(sl *SLCan)

// OptLogger sets the logger used for debug traffic, defaults to slog.Default()
func OptLogger(l *slog.Logger) Opt {
	return func(sl *SLCan) {
		if l != nil {
			sl.log = l
		}
	}
}

// OptDebug logs every command and response at debug level
func OptDebug(enabled bool) Opt {
	return func(sl *SLCan) {
		sl.debug = enabled
	}
}
