package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment utilities
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// Naming utilities

// DefaultSuffix derives the starting version suffix for a source file:
// the character following the stem's last character, uppercased.
// "P1A.tex" -> "B", so generated versions start where the source leaves off.
func DefaultSuffix(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "B"
	}
	runes := []rune(stem)
	return strings.ToUpper(string(runes[len(runes)-1] + 1))
}
