package config

import (
	"os"
	"strconv"
)

// Get returns the environment value for key, or fallback when unset or
// empty. Pair with godotenv.Load at startup for .env support.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt is Get for integer values; unparseable values fall back.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
