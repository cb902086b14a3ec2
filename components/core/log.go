package core

import (
	"io"
	"log"
	"os"
)

var (
	// LogInf logs informational events.
	LogInf = log.New(os.Stderr, "inf:", log.LstdFlags)
	// LogWrn logs warning events.
	LogWrn = log.New(os.Stderr, "wrn:", log.LstdFlags)
	// LogErr logs error events.
	LogErr = log.New(os.Stderr, "err:", log.LstdFlags)
)

// SetLogFile setups a log file for all loggers.
//
// Remarks:
//   - Empty path is ignored, loggers keep writing to stderr.
func SetLogFile(path string) error {
	if path == "" {
		return nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	SetLogOutput(file)

	for _, logger := range loggers() {
		logger.SetFlags(log.LUTC | log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}

	return nil
}

// SetLogOutput redirects all loggers to w.
func SetLogOutput(w io.Writer) {
	for _, logger := range loggers() {
		logger.SetOutput(w)
	}
}

func loggers() []*log.Logger {
	return []*log.Logger{LogInf, LogWrn, LogErr}
}
