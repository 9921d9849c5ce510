// Package batch copies a batch directory into an import area and normalizes
// the permissions of everything it copied.
//
// The pipeline is Resolve, then Copier.Copy, then Normalizer.Normalize, run
// in sequence by Operation. Nothing is rolled back on failure: a copy that
// stops halfway leaves a partially populated destination behind.
package batch
