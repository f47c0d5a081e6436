package logger

import (
	"io"
	"log"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
}

// New returns a Logger writing to w.  Debug messages are dropped unless
// verbose is set.
func New(w io.Writer, verbose bool) Logger {
	return &stdLogger{l: log.New(w, "huff: ", 0), verbose: verbose}
}

func (s *stdLogger) Debugf(format string, v ...any) {
	if s.verbose {
		s.l.Printf("[DEBUG] "+format, v...)
	}
}

func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }
