package edgelist

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/mmap"
)

// SourceKind identifies where an edge list is read from.
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceStdin
	SourceS3
	SourcePostgres
)

// String returns the short name of the source kind
func (k SourceKind) String() string {
	switch k {
	case SourceStdin:
		return "stdin"
	case SourceS3:
		return "s3"
	case SourcePostgres:
		return "postgres"
	default:
		return "file"
	}
}

// ClassifySource maps a location to its source kind: "-" is stdin,
// s3://bucket/key is an S3 object, postgres:// and postgresql:// URLs are
// databases, anything else is a local path.
func ClassifySource(location string) SourceKind {
	switch {
	case location == "-":
		return SourceStdin
	case strings.HasPrefix(location, "s3://"):
		return SourceS3
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return SourcePostgres
	default:
		return SourceFile
	}
}

// SourceOptions configures Open.
type SourceOptions struct {
	// Stdin replaces os.Stdin for the "-" location.
	Stdin io.Reader
	// Mmap maps local files into memory instead of reading them through the
	// page cache with read(2).
	Mmap bool
	// S3 is the client for s3:// locations. When nil a client is built from
	// S3Config.
	S3       S3API
	S3Config S3Config
}

// Open returns the raw (possibly compressed) byte stream of a location.
// Failures match ErrInputUnavailable.
func Open(ctx context.Context, location string, opts SourceOptions) (io.ReadCloser, error) {
	switch ClassifySource(location) {
	case SourceStdin:
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.NopCloser(in), nil
	case SourceS3:
		return openS3(ctx, location, opts)
	case SourcePostgres:
		return nil, unavailable("open", location, 0,
			fmt.Errorf("%w: database sources are loaded with LoadPostgres", ErrUnsupportedSource))
	default:
		if opts.Mmap {
			return openMmap(location)
		}
		f, err := os.Open(location)
		if err != nil {
			return nil, unavailable("open", location, 0, err)
		}
		return f, nil
	}
}

// mmapReader reads a memory-mapped file sequentially.
type mmapReader struct {
	*io.SectionReader
	at *mmap.ReaderAt
}

func (m *mmapReader) Close() error {
	return m.at.Close()
}

func openMmap(path string) (io.ReadCloser, error) {
	at, err := mmap.Open(path)
	if err != nil {
		return nil, unavailable("mmap", path, 0, err)
	}
	return &mmapReader{
		SectionReader: io.NewSectionReader(at, 0, int64(at.Len())),
		at:            at,
	}, nil
}
