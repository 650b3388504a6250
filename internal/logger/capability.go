package logger

// Logger is the logging capability handed to components at construction.
// Components that take a Logger never touch the shared log file directly,
// which keeps them testable with Nop().
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Default returns a Logger backed by the shared application log file.
func Default() Logger { return fileLogger{} }

type fileLogger struct{}

func (fileLogger) Info(format string, args ...interface{})    { Info(format, args...) }
func (fileLogger) Warning(format string, args ...interface{}) { Warning(format, args...) }
func (fileLogger) Error(format string, args ...interface{})   { Error(format, args...) }

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}
