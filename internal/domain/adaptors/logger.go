package adaptors

// LogLevel is a level accepted by APP_LOG_LEVEL.
type LogLevel string

const (
	Trace LogLevel = "trace"
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
	Fatal LogLevel = "fatal"
)

func (l LogLevel) Valid() bool {
	switch l {
	case Trace, Debug, Info, Warn, Error, Fatal:
		return true
	}
	return false
}
