package log_test

import (
	"bytes"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/log"
)

func TestCircularBuffer(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		writes       []string
		want         string
		capacity     int
		wantCapacity int
		wantFull     bool
	}{
		"empty": {
			capacity:     3,
			wantCapacity: 3,
		},
		"partial": {
			capacity:     3,
			writes:       []string{"a\n", "b\n"},
			want:         "a\nb\n",
			wantCapacity: 3,
		},
		"exactly full": {
			capacity:     2,
			writes:       []string{"a\n", "b\n"},
			want:         "a\nb\n",
			wantCapacity: 2,
			wantFull:     true,
		},
		"wraps and drops oldest": {
			capacity:     2,
			writes:       []string{"a\n", "b\n", "c\n", "d\n", "e\n"},
			want:         "d\ne\n",
			wantCapacity: 2,
			wantFull:     true,
		},
		"empty writes are ignored": {
			capacity:     2,
			writes:       []string{"", "a\n", ""},
			want:         "a\n",
			wantCapacity: 2,
		},
		"default capacity": {
			capacity:     0,
			writes:       []string{"a\n"},
			want:         "a\n",
			wantCapacity: 100,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cb := log.NewCircularBuffer(tc.capacity)
			for _, w := range tc.writes {
				n, err := cb.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n)
			}

			var out bytes.Buffer

			n, err := cb.WriteTo(&out)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.want)), n)
			assert.Equal(t, tc.want, out.String())
			assert.Equal(t, tc.wantCapacity, cb.Capacity())
			assert.Equal(t, tc.wantFull, cb.IsFull())
		})
	}
}

func TestCircularBuffer_CopiesEntries(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(2)

	p := []byte("abc")
	_, err := cb.Write(p)
	require.NoError(t, err)

	p[0] = 'x'

	entries := cb.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", string(entries[0]))

	entries[0][0] = 'y'
	assert.Equal(t, "abc", string(cb.Entries()[0]))
}

func TestCircularBuffer_Concurrent(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(50)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Go(func() {
			for j := range 20 {
				_, err := cb.Write([]byte(strconv.Itoa(i*100 + j)))
				assert.NoError(t, err)
			}
		})
	}

	wg.Wait()

	assert.Equal(t, 50, cb.Size())
	assert.True(t, cb.IsFull())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestCircularBuffer_WriteToError(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(2)
	_, err := cb.Write([]byte("a"))
	require.NoError(t, err)

	_, err = cb.WriteTo(failingWriter{})
	require.ErrorContains(t, err, "closed")
}
