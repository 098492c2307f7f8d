package engine

import "fmt"

// LeafError reports a failed translation of one string leaf, identified
// by its path inside the record.
type LeafError struct {
	Path string
	Err  error
}

func (e *LeafError) Error() string {
	return fmt.Sprintf("translate %s: %v", e.Path, e.Err)
}

func (e *LeafError) Unwrap() error {
	return e.Err
}

// RecordError marks a whole record as failed. Index is the record's
// zero-based position in the input batch.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index+1, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// BatchError marks the whole batch as failed; no partial results are
// produced when it is returned.
type BatchError struct {
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch translation failed: %v", e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
