// Package config provides the game configuration and environment helpers.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// envInt overwrites *dst with the integer value of key, if set.
func envInt(key string, dst *int) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// envInt64 overwrites *dst with the int64 value of key, if set.
func envInt64(key string, dst *int64) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// envBool overwrites *dst with the boolean value of key, if set.
func envBool(key string, dst *bool) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

// envDuration overwrites *dst with the duration value of key, if set.
// Plain integers are read as milliseconds.
func envDuration(key string, dst *time.Duration) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	if ms, err := strconv.Atoi(value); err == nil {
		*dst = time.Duration(ms) * time.Millisecond
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// envString overwrites *dst with the value of key, if set.
func envString(key string, dst *string) {
	if value, ok := os.LookupEnv(key); ok {
		*dst = value
	}
}
