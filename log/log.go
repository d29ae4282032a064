package log

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// IndentationLevel controls the amount of indentation of log messages.
var IndentationLevel = 0

// Spinner is displayed on os.Stderr while a long-running tool is busy.
var Spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

var errorOccured = false

const successField = "success"

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &formatter{},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.DebugLevel,
}

// formatter renders entries the way the console output always looked: an indentation prefix,
// a coloured level tag and the message verbatim. Messages carry their own trailing newline.
type formatter struct{}

func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if indent, ok := entry.Data["indent"].(int); ok {
		b.WriteString(strings.Repeat("  ", indent))
	}
	switch entry.Level {
	case logrus.DebugLevel:
		b.WriteString("\033[36mDebug: \033[0m")
	case logrus.WarnLevel:
		b.WriteString("\033[33mWarning: \033[0m")
	case logrus.ErrorLevel:
		b.WriteString("\033[31mError: \033[0m")
	case logrus.InfoLevel:
		if _, ok := entry.Data[successField]; ok {
			b.WriteString("\033[32mSuccess: \033[0m")
		}
	}
	b.WriteString(entry.Message)
	return b.Bytes(), nil
}

// SetOutput redirects all log messages to `w`.
func SetOutput(w io.Writer) {
	logger.Out = w
}

func entry() *logrus.Entry {
	return logger.WithField("indent", IndentationLevel)
}

// ErrorOccured reports whether any errors have occured.
func ErrorOccured() bool {
	return errorOccured
}

// Log prints an indented and formatted message to os.Stderr.
func Log(format string, a ...interface{}) {
	entry().Infof(format, a...)
}

// Debug prints an indented and formatted debug message to os.Stderr if verbose output is selected.
func Debug(format string, a ...interface{}) {
	if Verbose {
		entry().Debugf(format, a...)
	}
}

// Success prints an indented and formatted success message to os.Stderr.
func Success(format string, a ...interface{}) {
	entry().WithField(successField, true).Infof(format, a...)
}

// Warning prints an indented and formatted warning to os.Stderr.
func Warning(format string, a ...interface{}) {
	entry().Warnf(format, a...)
}

// Error prints an indented and formatted error message to os.Stderr.
func Error(format string, a ...interface{}) {
	errorOccured = true
	entry().Errorf(format, a...)
}

// Fatal prints an indented and formatted error message to os.Stderr and terminates the program.
func Fatal(format string, a ...interface{}) {
	Spinner.Stop()
	Error(format, a...)
	logger.Out.Write([]byte("\033[31mA fatal error occured. Exiting...\033[0m\n"))
	os.Exit(1)
}
