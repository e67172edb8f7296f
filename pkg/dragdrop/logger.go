package dragdrop

// Logger receives debug traces for rejected gestures. It is satisfied by
// github.com/labstack/gommon/log and echo.Logger.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
