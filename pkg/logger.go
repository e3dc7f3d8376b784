package channelmap

type Logger interface {
	Info(message string, module string)
	Error(string)
}

type discardLogger struct{}

func (discardLogger) Info(string, string) {}
func (discardLogger) Error(string)        {}

var logger Logger = discardLogger{}

// SetLogger replaces the package logger used by resolvers and stores created
// without an explicit one.
func SetLogger(l Logger) {
	if l == nil {
		l = discardLogger{}
	}
	logger = l
}
