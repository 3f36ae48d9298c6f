package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dd0wney/cluso-triangles/pkg/logging"
)

func newTestPool(t *testing.T, workers int) *WorkerPool {
	t.Helper()
	pool, err := NewWorkerPool(workers, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewWorkerPool(%d) error: %v", workers, err)
	}
	return pool
}

// TestWorkerPoolBasicOperations tests basic worker pool functionality
func TestWorkerPoolBasicOperations(t *testing.T) {
	pool := newTestPool(t, 4)

	executed := false
	if !pool.Submit(func() { executed = true }) {
		t.Error("Task submission failed")
	}

	pool.Close()

	if !executed {
		t.Error("Task was not executed")
	}
	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
}

func TestNewWorkerPool_NonPositive(t *testing.T) {
	pool := newTestPool(t, 0)
	defer pool.Close()

	if pool.Workers() != 1 {
		t.Errorf("Workers() = %d, want 1", pool.Workers())
	}
}

// TestWorkerPoolConcurrentSubmissions tests concurrent task submissions
func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool := newTestPool(t, 10)

	numTasks := 100
	var counter int64

	var wg sync.WaitGroup
	for i := 0; i < numTasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Submit(func() {
				atomic.AddInt64(&counter, 1)
			})
		}()
	}

	wg.Wait()
	pool.Close()

	if counter != int64(numTasks) {
		t.Errorf("Expected counter %d, got %d", numTasks, counter)
	}
}

// TestWorkerPoolCloseRace validates that closing while submitting doesn't panic
func TestWorkerPoolCloseRace(t *testing.T) {
	for iteration := 0; iteration < 50; iteration++ {
		pool := newTestPool(t, 4)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					pool.Submit(func() {
						time.Sleep(100 * time.Microsecond)
					})
				}
			}()
		}

		time.Sleep(time.Millisecond)
		pool.Close()
		wg.Wait()
	}
}

// TestWorkerPoolSubmitAfterClose tests that submissions after close return false
func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := newTestPool(t, 4)
	pool.Close()
	pool.Close()

	if pool.Submit(func() { t.Error("This task should never execute") }) {
		t.Error("Task submission after close should return false")
	}
}

// TestWorkerPoolWithPanic tests that panics in tasks don't crash the pool
func TestWorkerPoolWithPanic(t *testing.T) {
	pool := newTestPool(t, 2)

	var counter int64
	for i := 0; i < 3; i++ {
		pool.Submit(func() { panic("intentional panic") })
	}
	for i := 0; i < 10; i++ {
		pool.Submit(func() { atomic.AddInt64(&counter, 1) })
	}
	pool.Close()

	if counter != 10 {
		t.Errorf("Expected 10 normal tasks to complete, got %d", counter)
	}
	err := pool.Err()
	if !errors.Is(err, ErrTaskPanicked) {
		t.Errorf("Err() = %v, want ErrTaskPanicked", err)
	}
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want []Chunk
	}{
		{"empty", 0, 4, nil},
		{"exact", 8, 4, []Chunk{{0, 0, 4}, {1, 4, 8}}},
		{"remainder", 10, 4, []Chunk{{0, 0, 4}, {1, 4, 8}, {2, 8, 10}}},
		{"zero size", 5, 0, []Chunk{{0, 0, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunks(tt.n, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("Chunks(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunkSize(t *testing.T) {
	if got := ChunkSize(10, 4); got != 64 {
		t.Errorf("ChunkSize(10, 4) = %d, want 64", got)
	}
	if got := ChunkSize(64000, 4); got != 2000 {
		t.Errorf("ChunkSize(64000, 4) = %d, want 2000", got)
	}
}

func TestForEachChunk_CoversEveryItem(t *testing.T) {
	pool := newTestPool(t, 4)

	const n = 1000
	seen := make([]int32, n)
	partial := make([]int, len(Chunks(n, 37)))

	err := ForEachChunk(context.Background(), pool, n, 37, func(_ context.Context, c Chunk) error {
		for i := c.Start; i < c.End; i++ {
			atomic.AddInt32(&seen[i], 1)
			partial[c.Index] += i
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachChunk() error: %v", err)
	}

	for i, s := range seen {
		if s != 1 {
			t.Fatalf("item %d visited %d times", i, s)
		}
	}
	sum := 0
	for _, p := range partial {
		sum += p
	}
	if sum != n*(n-1)/2 {
		t.Errorf("sum = %d, want %d", sum, n*(n-1)/2)
	}
}

func TestForEachChunk_AutoSizeFromWorkers(t *testing.T) {
	pool := newTestPool(t, 2)

	const n = 5000
	var chunks, items int64
	err := ForEachChunk(context.Background(), pool, n, 0, func(_ context.Context, c Chunk) error {
		atomic.AddInt64(&chunks, 1)
		atomic.AddInt64(&items, int64(c.End-c.Start))
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachChunk() error: %v", err)
	}

	want := len(Chunks(n, ChunkSize(n, 2)))
	if chunks != int64(want) {
		t.Errorf("chunks = %d, want %d", chunks, want)
	}
	if items != n {
		t.Errorf("items = %d, want %d", items, n)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if got := DefaultWorkers(); got < 1 {
		t.Errorf("DefaultWorkers() = %d, want at least 1", got)
	}
}

func TestForEachChunk_PropagatesErrors(t *testing.T) {
	pool := newTestPool(t, 2)
	boom := errors.New("boom")

	err := ForEachChunk(context.Background(), pool, 10, 2, func(_ context.Context, c Chunk) error {
		if c.Index == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("ForEachChunk() = %v, want boom", err)
	}
}

func TestForEachChunk_Cancelled(t *testing.T) {
	pool := newTestPool(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ForEachChunk(ctx, pool, 100, 10, func(context.Context, Chunk) error {
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ForEachChunk() = %v, want context.Canceled", err)
	}
}

func TestForEachChunk_Panic(t *testing.T) {
	pool := newTestPool(t, 2)

	err := ForEachChunk(context.Background(), pool, 4, 1, func(_ context.Context, c Chunk) error {
		if c.Index == 2 {
			panic("bad chunk")
		}
		return nil
	})
	if !errors.Is(err, ErrTaskPanicked) {
		t.Errorf("ForEachChunk() = %v, want ErrTaskPanicked", err)
	}
}
