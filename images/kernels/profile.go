package kernels

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// MemoryProfiler samples heap statistics on a fixed interval while a filter runs.
// Used by the CLI bench command to show GC pressure with and without a Pool.
type MemoryProfiler struct {
	interval time.Duration
	mu       sync.Mutex
	samples  []MemorySample
	stop     chan struct{}
	done     chan struct{}
}

// MemorySample captures memory state at a specific point in time.
type MemorySample struct {
	Timestamp    time.Time // When the sample was taken
	HeapAlloc    uint64    // Currently allocated heap memory (bytes)
	HeapSys      uint64    // Total heap memory from OS (bytes)
	HeapInuse    uint64    // In-use heap memory (bytes)
	TotalAlloc   uint64    // Cumulative bytes allocated
	PauseTotalNs uint64    // Cumulative GC pause time (nanoseconds)
	NumGC        uint32    // Number of completed GC cycles
}

// NewMemoryProfiler creates a memory profiler with the given sampling interval.
func NewMemoryProfiler(interval time.Duration) *MemoryProfiler {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &MemoryProfiler{interval: interval}
}

// Start begins sampling in a background goroutine.
func (mp *MemoryProfiler) Start() {
	mp.stop = make(chan struct{})
	mp.done = make(chan struct{})
	mp.record()
	go func() {
		defer close(mp.done)
		ticker := time.NewTicker(mp.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mp.record()
			case <-mp.stop:
				return
			}
		}
	}()
}

// Stop ends sampling and returns the analysis of everything collected.
func (mp *MemoryProfiler) Stop() *MemoryAnalysisReport {
	if mp.stop != nil {
		close(mp.stop)
		<-mp.done
		mp.stop = nil
	}
	mp.record()
	return mp.report()
}

func (mp *MemoryProfiler) record() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.samples = append(mp.samples, MemorySample{
		Timestamp:    time.Now(),
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapInuse:    m.HeapInuse,
		TotalAlloc:   m.TotalAlloc,
		PauseTotalNs: m.PauseTotalNs,
		NumGC:        m.NumGC,
	})
}

// MemoryAnalysisReport summarizes the samples of one profiling window.
type MemoryAnalysisReport struct {
	Duration         time.Duration `json:"duration"`
	SampleCount      int           `json:"sample_count"`
	TotalAllocations uint64        `json:"total_allocations"`  // Bytes allocated in the window
	PeakHeapUsage    uint64        `json:"peak_heap_usage"`    // Maximum HeapAlloc seen
	AverageHeapUsage uint64        `json:"average_heap_usage"` // Mean HeapAlloc
	TotalGCPauses    time.Duration `json:"total_gc_pauses"`
	GCCycles         uint32        `json:"gc_cycles"`
	GCOverhead       float64       `json:"gc_overhead"`       // GC pause time / wall time
	MemoryEfficiency float64       `json:"memory_efficiency"` // HeapInuse / HeapSys at the end
}

func (mp *MemoryProfiler) report() *MemoryAnalysisReport {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if len(mp.samples) == 0 {
		return &MemoryAnalysisReport{}
	}
	first := mp.samples[0]
	last := mp.samples[len(mp.samples)-1]

	var total, peak uint64
	for _, s := range mp.samples {
		total += s.HeapAlloc
		peak = max(peak, s.HeapAlloc)
	}

	rep := &MemoryAnalysisReport{
		Duration:         last.Timestamp.Sub(first.Timestamp),
		SampleCount:      len(mp.samples),
		TotalAllocations: last.TotalAlloc - first.TotalAlloc,
		PeakHeapUsage:    peak,
		AverageHeapUsage: total / uint64(len(mp.samples)),
		TotalGCPauses:    time.Duration(last.PauseTotalNs - first.PauseTotalNs),
		GCCycles:         last.NumGC - first.NumGC,
	}
	if rep.Duration > 0 {
		rep.GCOverhead = float64(rep.TotalGCPauses) / float64(rep.Duration)
	}
	if last.HeapSys > 0 {
		rep.MemoryEfficiency = float64(last.HeapInuse) / float64(last.HeapSys)
	}
	return rep
}

// OperationProfile is the memory and timing profile of a repeated operation.
type OperationProfile struct {
	*MemoryAnalysisReport

	Name                    string        `json:"name"`
	Iterations              int           `json:"iterations"`
	OperationDuration       time.Duration `json:"operation_duration"`
	AvgIterationTime        time.Duration `json:"avg_iteration_time"`
	AllocationsPerIteration uint64        `json:"allocations_per_iteration"`
	BytesPerIteration       uint64        `json:"bytes_per_iteration"`
}

// ProfileOperation runs op the given number of times under a MemoryProfiler.
//
// Arguments:
// - name: A label for the report.
// - iterations: How many times to run op; values below 1 run it once.
// - op: The operation, typically a closure over one filter call.
//
// Returns:
// - The profile, or the first error op returned (wrapped with the iteration).
//
// @example
//
//	prof, err := ProfileOperation("box-blur", 20, func() error {
//	    _, err := BoxBlur(img, 5, Options{Parallel: true})
//	    return err
//	})
func ProfileOperation(name string, iterations int, op func() error) (*OperationProfile, error) {
	iterations = max(iterations, 1)

	var m1, m2 runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m1)

	profiler := NewMemoryProfiler(10 * time.Millisecond)
	profiler.Start()
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := op(); err != nil {
			profiler.Stop()
			return nil, errors.Wrapf(err, "%s: iteration %d", name, i)
		}
	}
	elapsed := time.Since(start)
	report := profiler.Stop()
	runtime.ReadMemStats(&m2)

	return &OperationProfile{
		MemoryAnalysisReport:    report,
		Name:                    name,
		Iterations:              iterations,
		OperationDuration:       elapsed,
		AvgIterationTime:        elapsed / time.Duration(iterations),
		AllocationsPerIteration: (m2.Mallocs - m1.Mallocs) / uint64(iterations),
		BytesPerIteration:       (m2.TotalAlloc - m1.TotalAlloc) / uint64(iterations),
	}, nil
}

// FormatReport generates a human-readable profile report.
func (p *OperationProfile) FormatReport() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Profile: %s (%d iterations)\n", p.Name, p.Iterations)
	fmt.Fprintf(&sb, "  Total time:        %v\n", p.OperationDuration)
	fmt.Fprintf(&sb, "  Per iteration:     %v\n", p.AvgIterationTime)
	fmt.Fprintf(&sb, "  Allocs/iteration:  %d\n", p.AllocationsPerIteration)
	fmt.Fprintf(&sb, "  Bytes/iteration:   %.2f MB\n", float64(p.BytesPerIteration)/1024/1024)
	if r := p.MemoryAnalysisReport; r != nil {
		fmt.Fprintf(&sb, "  Peak heap:         %.2f MB\n", float64(r.PeakHeapUsage)/1024/1024)
		fmt.Fprintf(&sb, "  GC cycles:         %d (%v paused, %.2f%% overhead)\n",
			r.GCCycles, r.TotalGCPauses, r.GCOverhead*100)
	}
	return sb.String()
}
