package utils

import (
	"errors"
	"os"
)

// ErrUserInitiatedExit is returned when the user has asked to quit, as
// opposed to some failure. Callers should exit with status 0 on this error.
var ErrUserInitiatedExit = errors.New("user initiated exit")

// Getenv returns the value of the environment variable key, or fallback
// if the variable is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
