// Package pipeline scores candidate/reference pairs on a fixed-size worker
// pool and returns the results in a deterministic order.
//
// The only contract to implement is Aligner (Align).
// This keeps the pipeline swappable and testable.
package pipeline
