package dsprobe

import (
	"os"

	"github.com/kataras/golog"
)

// Logger is the shared golog instance used by every package.
var Logger = golog.New()

func init() {
	Logger.SetOutput(os.Stdout)
	Logger.SetTimeFormat("2006-01-02 15:04:05")
}

// SetLogLevel changes the active log level ("debug", "info", "warn", "error", "fatal").
func SetLogLevel(level string) {
	Logger.SetLevel(level)
}

// LogD prints debug message.
func LogD(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
}

// LogI prints information message.
func LogI(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

// LogW prints warning message.
func LogW(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

// LogE prints error message.
func LogE(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
}

// LogF prints fatal message and exits.
func LogF(format string, args ...interface{}) {
	Logger.Fatalf(format, args...)
}

// LogErr prints an error value.
func LogErr(err error) {
	if err == nil {
		return
	}
	Logger.Error(err.Error())
}
