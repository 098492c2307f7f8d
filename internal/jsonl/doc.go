// Package jsonl reads and writes line-delimited JSON record files, one
// tree value per line.
package jsonl
