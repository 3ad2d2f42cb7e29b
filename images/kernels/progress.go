package kernels

import (
	"sync"
	"sync/atomic"

	"github.com/nvr-ai/go-imagefx/images"
)

// progressSteps bounds how many intermediate reports one invocation emits.
const progressSteps = 100

// Reporter receives coarse progress samples in [0, 1].
// Implementations must not block; the filters never wait on them.
type Reporter interface {
	Report(progress float64)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(progress float64)

// Report calls f(progress).
func (f ReporterFunc) Report(progress float64) { f(progress) }

type nopReporter struct{}

func (nopReporter) Report(float64) {}

// Nop is the Reporter used when no observer is attached.
var Nop Reporter = nopReporter{}

type channelReporter struct {
	ch chan<- float64
}

// ChannelReporter returns a Reporter that performs a non-blocking send on ch.
// Samples are dropped when ch is full, nil, or closed.
//
// @example
//
//	ch := make(chan float64, 16)
//	out, err := BoxBlur(img, 5, Options{Progress: ChannelReporter(ch)})
func ChannelReporter(ch chan<- float64) Reporter {
	return channelReporter{ch: ch}
}

func (c channelReporter) Report(progress float64) {
	if c.ch == nil {
		return
	}
	defer func() {
		// Sending on a closed channel panics; a vanished observer is not our failure.
		if recover() != nil {
			images.Logger().Warn("progress channel closed, dropping sample", "progress", progress)
		}
	}()
	select {
	case c.ch <- progress:
	default:
	}
}

// tracker turns per-row completions from concurrent workers into a monotonic,
// rate-limited progress stream.
type tracker struct {
	rep    Reporter
	total  int64
	stride int64
	done   atomic.Int64

	mu   sync.Mutex
	last float64
}

func newTracker(rep Reporter, total int) *tracker {
	if rep == nil {
		rep = Nop
	}
	t := &tracker{rep: rep, total: int64(max(total, 1))}
	t.stride = max((t.total+progressSteps-1)/progressSteps, 1)
	return t
}

func (t *tracker) emit(p float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p < t.last {
		return
	}
	t.last = p
	t.rep.Report(p)
}

func (t *tracker) start() {
	if t == nil {
		return
	}
	t.emit(0)
}

// advance records n finished units and reports when a stride boundary is crossed.
func (t *tracker) advance(n int) {
	if t == nil || n <= 0 {
		return
	}
	after := t.done.Add(int64(n))
	before := after - int64(n)
	if before/t.stride == after/t.stride {
		return
	}
	p := float64(after) / float64(t.total)
	// 1.0 is reserved for finish.
	if p >= 1 {
		p = 0.999
	}
	t.emit(p)
}

func (t *tracker) finish() {
	if t == nil {
		return
	}
	t.emit(1)
}
