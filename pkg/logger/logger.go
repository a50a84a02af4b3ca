package logger

import (
	"fmt"
	"log"
	"os"
)

var std = log.New(os.Stdout, "", log.LstdFlags)

// Init initializes the plain logger used during startup,
// before the structured logger is configured.
func Init() {
	std.SetOutput(os.Stdout)
}

// Info logs an informational message (printf style)
func Info(format string, args ...interface{}) {
	std.Println("[INFO] " + fmt.Sprintf(format, args...))
}

// Warn logs a warning message (printf style)
func Warn(format string, args ...interface{}) {
	std.Println("[WARN] " + fmt.Sprintf(format, args...))
}

// Error logs an error message (printf style)
func Error(format string, args ...interface{}) {
	std.Println("[ERROR] " + fmt.Sprintf(format, args...))
}
