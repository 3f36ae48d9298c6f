package edgelist

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"

	"github.com/golang/snappy"
)

// Compression identifies the encoding of an edge-list stream.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionSnappy
)

// String returns the short name of the compression
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionSnappy:
		return "snappy"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	// Stream identifier chunk of the snappy framing format
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// DetectCompression inspects the leading bytes of a stream.
func DetectCompression(prefix []byte) Compression {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(prefix, snappyMagic):
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// decompressReader closes the decoder (if any) and the underlying source.
type decompressReader struct {
	io.Reader
	closers []io.Closer
}

func (d *decompressReader) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Decompress sniffs rc and wraps it in a gzip or snappy decoder when the
// magic bytes match. Closing the result closes rc.
func Decompress(rc io.ReadCloser) (io.ReadCloser, Compression, error) {
	br := bufio.NewReaderSize(rc, 64*1024)

	// A short or empty stream is plain text
	prefix, err := br.Peek(len(snappyMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, CompressionNone, err
	}

	kind := DetectCompression(prefix)
	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, kind, err
		}
		return &decompressReader{Reader: zr, closers: []io.Closer{zr, rc}}, kind, nil
	case CompressionSnappy:
		return &decompressReader{Reader: snappy.NewReader(br), closers: []io.Closer{rc}}, kind, nil
	default:
		return &decompressReader{Reader: br, closers: []io.Closer{rc}}, kind, nil
	}
}
