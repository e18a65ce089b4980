package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable from init time; Init applies the production settings.
var Log = logrus.New()

// Init configures the process-wide logger. Called once at startup.
func Init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetLevel(logrus.InfoLevel)
}
