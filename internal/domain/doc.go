// Package domain holds the core model types and interfaces shared across the
// application: trends, outbound messages, and the repository and broadcast
// contracts. It has no dependencies on other internal packages.
package domain
