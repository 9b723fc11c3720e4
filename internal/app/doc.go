// Package app provides the application service layer.
//
// Orchestrates use cases: trend submission (summarize, store, announce) and
// read-side listing. Sits between HTTP handlers and the repository. Depends
// on domain interfaces, not concrete implementations.
package app
