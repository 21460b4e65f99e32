package core

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// SetLogFile redirects all log output to the provided file.
func SetLogFile(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	Log.SetOutput(file)

	return nil
}

// SetLogLevel changes the logging verbosity.
//
// Parameters:
//   - level - one of the logrus level names: "debug", "info", "warning", "error".
func SetLogLevel(level string) error {
	val, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	Log.SetLevel(val)

	return nil
}
