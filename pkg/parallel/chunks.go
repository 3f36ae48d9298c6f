package parallel

import (
	"context"
	"errors"
	"fmt"
)

// Chunk is a half-open index range [Start, End).
type Chunk struct {
	Index int
	Start int
	End   int
}

// Chunks splits n items into consecutive ranges of at most size items.
func Chunks(n, size int) []Chunk {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}
	chunks := make([]Chunk, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		chunks = append(chunks, Chunk{Index: len(chunks), Start: start, End: end})
	}
	return chunks
}

// ChunkSize picks a chunk size that gives each worker several chunks so that
// skewed degree distributions still balance.
func ChunkSize(n, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	size := n / (workers * 8)
	return max(size, 64)
}

// ForEachChunk runs fn for every chunk of n items on the pool and waits for
// completion. fn receives the chunk it owns; results should be written to a
// slot indexed by Chunk.Index so the caller can reduce them in order.
// A non-positive size is derived from the pool's worker count. The pool is
// closed on return.
func ForEachChunk(ctx context.Context, pool *WorkerPool, n, size int, fn func(ctx context.Context, c Chunk) error) error {
	if size <= 0 {
		size = ChunkSize(n, pool.Workers())
	}
	chunks := Chunks(n, size)
	errs := make([]error, len(chunks))

	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			pool.Close()
			return err
		}
		if !pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				errs[c.Index] = err
				return
			}
			errs[c.Index] = fn(ctx, c)
		}) {
			pool.Close()
			return fmt.Errorf("chunk %d: worker pool closed", c.Index)
		}
	}

	pool.Close()
	if err := pool.Err(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
