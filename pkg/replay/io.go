package replay

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// OpenReader opens path for reading, transparently gzip- or
// zstd-decompressing based on its extension (".gz"/".gzip" or
// ".zst"/".zstd"). "-" reads from stdin uncompressed.
func OpenReader(path string) (io.Reader, io.Closer, error) {
	if path == "-" {
		return os.Stdin, nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".gz"), strings.HasSuffix(path, ".gzip"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("replay: gzip reader %s: %w", path, err)
		}
		return gz, multiCloser{gz, f}, nil
	case strings.HasSuffix(path, ".zst"), strings.HasSuffix(path, ".zstd"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("replay: zstd reader %s: %w", path, err)
		}
		return zr.IOReadCloser(), f, nil
	default:
		return f, f, nil
	}
}

// OpenWriter opens path for writing, compressing by the same extension
// convention as OpenReader. "-" writes to stdout uncompressed.
func OpenWriter(path string) (io.Writer, io.Closer, error) {
	if path == "-" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("replay: create %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".gz"), strings.HasSuffix(path, ".gzip"):
		gz := gzip.NewWriter(f)
		return gz, multiCloser{gz, f}, nil
	case strings.HasSuffix(path, ".zst"), strings.HasSuffix(path, ".zstd"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("replay: zstd writer %s: %w", path, err)
		}
		return zw, multiCloser{zw, f}, nil
	default:
		return f, f, nil
	}
}

// multiCloser closes an inner compressor before the underlying file.
type multiCloser struct {
	inner io.Closer
	outer io.Closer
}

func (c multiCloser) Close() error {
	if err := c.inner.Close(); err != nil {
		c.outer.Close()
		return err
	}
	return c.outer.Close()
}

// Writer appends JSON-line Records to an underlying io.Writer.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("replay: marshal record: %w", err)
	}
	if _, err := w.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("replay: write record: %w", err)
	}
	return nil
}

// Reader iterates JSON-line Records from an underlying io.Reader.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next Record, or io.EOF once the stream is
// exhausted.
func (r *Reader) Next() (Record, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Record{}, fmt.Errorf("replay: scan record: %w", err)
		}
		return Record{}, io.EOF
	}
	var rec Record
	if err := json.Unmarshal(r.scanner.Bytes(), &rec); err != nil {
		return Record{}, fmt.Errorf("replay: unmarshal record: %w", err)
	}
	return rec, nil
}

// All drains the reader, dispatching every record to sink in order.
func (r *Reader) All(sink MarketDataSink) (int, error) {
	count := 0
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if err := Dispatch(rec, sink); err != nil {
			return count, err
		}
		count++
	}
}
