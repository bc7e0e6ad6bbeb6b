package utils

import (
	"os"
	"strconv"
	"strings"
)

// EnvOrDefault returns the ENV value or a fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// EnvFloat parses a float from ENV, falling back to def on anything
// missing or malformed.
func EnvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
