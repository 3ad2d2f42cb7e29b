package kernels

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidBuckets is returned when an oil-paint bucket count is below 1.
	ErrInvalidBuckets = errors.New("bucket count must be at least 1")
	// ErrEmptyRamp is returned when a dither ramp has no glyphs.
	ErrEmptyRamp = errors.New("character ramp is empty")
	// ErrDimensionMismatch is returned when a raster's buffer does not match its dimensions.
	ErrDimensionMismatch = errors.New("buffer size does not match dimensions")
)

// Options configures a windowed filter call. Keeping this extensible reduces churn later.
type Options struct {
	Pool     *Pool    // Optional buffer pool for intermediate planes.
	Parallel bool     // Enable row/column parallelism.
	Workers  int      // Upper bound on concurrent workers; <= 0 means GOMAXPROCS.
	Progress Reporter // Optional progress observer; nil means none.
}

// Pool lets callers reuse intermediate planes across calls to reduce GC pressure.
// Output images are never taken from the pool.
type Pool struct {
	sums  sync.Pool // *[]uint32
	bytes sync.Pool // *[]byte
}

func getSlice[T any](p *sync.Pool, n int) []T {
	if v := p.Get(); v != nil {
		s := *(v.(*[]T))
		if cap(s) >= n {
			return s[:n]
		}
	}
	return make([]T, n)
}

// GetSums returns a uint32 plane of length n with unspecified contents.
func (p *Pool) GetSums(n int) []uint32 {
	if p == nil {
		return make([]uint32, n)
	}
	return getSlice[uint32](&p.sums, n)
}

// PutSums hands a plane back for reuse.
func (p *Pool) PutSums(s []uint32) {
	if p == nil || s == nil {
		return
	}
	p.sums.Put(&s)
}

// GetBytes returns a byte plane of length n with unspecified contents.
func (p *Pool) GetBytes(n int) []byte {
	if p == nil {
		return make([]byte, n)
	}
	return getSlice[byte](&p.bytes, n)
}

// PutBytes hands a plane back for reuse.
func (p *Pool) PutBytes(s []byte) {
	if p == nil || s == nil {
		return
	}
	p.bytes.Put(&s)
}
