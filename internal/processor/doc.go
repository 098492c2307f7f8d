// Package processor wires one translation run together: it loads the
// input records, builds the configured translation backend, drives the
// concurrent batch engine and writes the translated records out.
package processor
