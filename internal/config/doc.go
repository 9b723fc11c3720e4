// Package config provides environment-based configuration.
//
// Loads from the process environment (with .env support via godotenv in
// main), applies defaults, and validates intervals and limits.
package config
