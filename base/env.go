package base

import (
	"os"
)

// EnvVar reads an environment variable and falls back to a default when unset.
// It returns the resolved string value.
func EnvVar(key string, defaultValue string) string {
	if val, present := os.LookupEnv(key); present {
		return val
	}
	return defaultValue
}
