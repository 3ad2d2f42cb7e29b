package kernels

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nvr-ai/go-imagefx/images"
)

// Executor fans independent row work out to a bounded set of goroutines.
// Every row's destination slice is carved out of the output before any worker
// starts, so a worker can only ever write the rows it owns.
type Executor struct {
	parallel bool
	workers  int
	track    *tracker
}

// NewExecutor builds an executor for one filter invocation.
//
// Arguments:
// - opt: Parallelism and progress settings.
// - totalRows: The number of rows every ForEachRow call of this invocation will visit
// in total, used to scale progress.
//
// Returns:
// - An Executor whose progress starts at 0.
func NewExecutor(opt Options, totalRows int) *Executor {
	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Executor{
		parallel: opt.Parallel && workers > 1,
		workers:  workers,
		track:    newTracker(opt.Progress, totalRows),
	}
}

// Start reports 0.0 progress.
func (ex *Executor) Start() { ex.track.start() }

// Finish reports 1.0 progress.
func (ex *Executor) Finish() { ex.track.finish() }

// ForEachRow runs fn once for every stride-long row of dst.
// fn receives the row index and a capacity-capped slice covering exactly that
// row; it must not retain the slice. No ordering between rows is guaranteed.
//
// Arguments:
// - ex: The executor; nil runs sequentially without progress.
// - dst: The destination plane, a whole number of rows long.
// - stride: Elements per row.
// - fn: The per-row work unit.
//
// @example
//
//	ForEachRow(ex, out.Data, out.Stride(), func(y int, row []byte) {
//	    // fill row y
//	})
func ForEachRow[T any](ex *Executor, dst []T, stride int, fn func(row int, out []T)) {
	if stride <= 0 {
		return
	}
	rows := len(dst) / stride

	run := func(start, end int, span []T) {
		for y := start; y < end; y++ {
			off := (y - start) * stride
			fn(y, span[off:off+stride:off+stride])
			if ex != nil {
				ex.track.advance(1)
			}
		}
	}

	if ex == nil || !ex.parallel || rows < 4 {
		run(0, rows, dst)
		return
	}

	chunk := chooseChunk(rows)
	images.Logger().Debug("row fan-out", "rows", rows, "chunk", chunk, "workers", ex.workers)

	var g errgroup.Group
	g.SetLimit(ex.workers)
	for start := 0; start < rows; start += chunk {
		end := min(start+chunk, rows)
		span := dst[start*stride : end*stride : end*stride]
		g.Go(func() error {
			run(start, end, span)
			return nil
		})
	}
	_ = g.Wait()
}

// transpose writes the w x h plane src (ch interleaved values per pixel) into
// dst as an h x w plane, so columns of src become rows of dst.
func transpose[T any](ex *Executor, src []T, w, h, ch int, dst []T) {
	ForEachRow(ex, dst, h*ch, func(x int, out []T) {
		for y := 0; y < h; y++ {
			s := (y*w + x) * ch
			copy(out[y*ch:y*ch+ch], src[s:s+ch])
		}
	})
}

// chooseChunk picks a work chunk size that balances overhead and cache locality.
func chooseChunk(n int) int {
	switch {
	case n >= 2048:
		return 128
	case n >= 512:
		return 64
	default:
		return 32
	}
}
