package jsonl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"codeberg.org/snonux/jsonlingo/internal/tree"
)

// maxLineSize bounds a single record line. GSM8K-style datasets stay far
// below this, but records with long passages need more than bufio's 64K.
const maxLineSize = 16 * 1024 * 1024

// Read parses line-delimited JSON records from r. Blank lines are
// skipped; any malformed line fails the whole read.
func Read(r io.Reader) ([]tree.Value, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []tree.Value
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		v, err := tree.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return records, nil
}

// ReadFile loads every record from a JSONL file.
func ReadFile(path string) ([]tree.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write serializes records to w, one JSON document per line.
func Write(w io.Writer, records []tree.Value) error {
	bw := bufio.NewWriter(w)
	for i, rec := range records {
		b, err := tree.Encode(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile saves records to a JSONL file, replacing any existing file.
func WriteFile(path string, records []tree.Value) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
