package log

import (
	"fmt"
	"io"
	"sync"
)

// defaultCapacity is used when a buffer is created with a capacity below one.
const defaultCapacity = 100

// CircularBuffer is an [io.Writer] keeping the most recent writes. Each
// Write is one entry, and the oldest entry is dropped when the buffer is
// full. It holds log records while an interactive program owns the terminal.
type CircularBuffer struct {
	entries [][]byte
	next    int
	size    int
	mu      sync.Mutex
}

func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity < 1 {
		capacity = defaultCapacity
	}

	return &CircularBuffer{entries: make([][]byte, capacity)}
}

// Write stores a copy of p as one entry.
func (cb *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries[cb.next] = append([]byte(nil), p...)
	cb.next = (cb.next + 1) % len(cb.entries)
	cb.size = min(cb.size+1, len(cb.entries))

	return len(p), nil
}

// Entries returns copies of the stored entries, oldest first.
func (cb *CircularBuffer) Entries() [][]byte {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	out := make([][]byte, 0, cb.size)

	start := (cb.next - cb.size + len(cb.entries)) % len(cb.entries)
	for i := range cb.size {
		e := cb.entries[(start+i)%len(cb.entries)]
		out = append(out, append([]byte(nil), e...))
	}

	return out
}

func (cb *CircularBuffer) Size() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.size
}

func (cb *CircularBuffer) Capacity() int {
	return len(cb.entries)
}

// IsFull reports whether older entries are being dropped.
func (cb *CircularBuffer) IsFull() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.size == len(cb.entries)
}

// WriteTo writes the stored entries to w, oldest first.
func (cb *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, e := range cb.Entries() {
		n, err := w.Write(e)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write entry: %w", err)
		}
	}

	return total, nil
}
