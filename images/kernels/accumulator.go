package kernels

// MaxBuckets is the largest useful histogram size: (r+g+b) takes 766 distinct
// values, so beyond 768 buckets the bucket mapping no longer changes.
const MaxBuckets = 768

// SumAccumulator keeps a running per-channel sum over a sliding window.
// Add and Remove are exact inverses; Remove must only be given samples that
// were previously added.
type SumAccumulator struct {
	sum   [3]uint64
	count int
}

// Add incorporates one sample.
func (a *SumAccumulator) Add(r, g, b uint64) {
	a.sum[0] += r
	a.sum[1] += g
	a.sum[2] += b
	a.count++
}

// Remove reverses a previous Add of the same sample.
func (a *SumAccumulator) Remove(r, g, b uint64) {
	a.sum[0] -= r
	a.sum[1] -= g
	a.sum[2] -= b
	a.count--
}

// Count returns the number of samples in the window.
func (a *SumAccumulator) Count() int { return a.count }

// Sum returns the per-channel sums.
func (a *SumAccumulator) Sum() [3]uint64 { return a.sum }

// Mean returns the truncated per-channel mean, or black for an empty window.
func (a *SumAccumulator) Mean() [3]uint8 {
	return a.MeanScaled(1)
}

// MeanScaled divides by count*scale. It is used when every sample is itself a
// sum of scale pixels, as in the vertical pass of a separable box blur.
func (a *SumAccumulator) MeanScaled(scale int) [3]uint8 {
	d := uint64(a.count) * uint64(max(scale, 0))
	if d == 0 {
		return [3]uint8{}
	}
	return [3]uint8{uint8(a.sum[0] / d), uint8(a.sum[1] / d), uint8(a.sum[2] / d)}
}

// Reset empties the window.
func (a *SumAccumulator) Reset() { *a = SumAccumulator{} }

// HistogramAccumulator buckets samples by intensity and tracks, per bucket,
// the sample count and per-channel sums.
type HistogramAccumulator struct {
	counts []int
	sums   [][3]uint64
	count  int
}

// NewHistogramAccumulator allocates a histogram with the given number of
// buckets, clamped to [1, MaxBuckets].
func NewHistogramAccumulator(buckets int) *HistogramAccumulator {
	buckets = min(max(buckets, 1), MaxBuckets)
	return &HistogramAccumulator{
		counts: make([]int, buckets),
		sums:   make([][3]uint64, buckets),
	}
}

// Buckets returns the number of buckets.
func (h *HistogramAccumulator) Buckets() int { return len(h.counts) }

// Bucket maps a pixel to floor((r+g+b)*buckets/768), clamped to the last bucket.
func (h *HistogramAccumulator) Bucket(r, g, b uint8) int {
	n := len(h.counts)
	i := (int(r) + int(g) + int(b)) * n / (3 * 256)
	return min(i, n-1)
}

// Add incorporates one pixel.
func (h *HistogramAccumulator) Add(r, g, b uint8) {
	i := h.Bucket(r, g, b)
	h.counts[i]++
	s := &h.sums[i]
	s[0] += uint64(r)
	s[1] += uint64(g)
	s[2] += uint64(b)
	h.count++
}

// Remove reverses a previous Add of the same pixel.
func (h *HistogramAccumulator) Remove(r, g, b uint8) {
	i := h.Bucket(r, g, b)
	h.counts[i]--
	s := &h.sums[i]
	s[0] -= uint64(r)
	s[1] -= uint64(g)
	s[2] -= uint64(b)
	h.count--
}

// Count returns the number of samples in the window.
func (h *HistogramAccumulator) Count() int { return h.count }

// BucketCount returns the number of samples currently in bucket i.
func (h *HistogramAccumulator) BucketCount(i int) int { return h.counts[i] }

// Dominant returns the most populated bucket and the truncated per-channel mean
// of its samples. Ties go to the lowest bucket index. An empty window yields
// bucket -1 and black.
func (h *HistogramAccumulator) Dominant() (int, [3]uint8) {
	if h.count == 0 {
		return -1, [3]uint8{}
	}
	best := 0
	for i := 1; i < len(h.counts); i++ {
		if h.counts[i] > h.counts[best] {
			best = i
		}
	}
	n := uint64(h.counts[best])
	s := h.sums[best]
	return best, [3]uint8{uint8(s[0] / n), uint8(s[1] / n), uint8(s[2] / n)}
}

// Reset empties every bucket.
func (h *HistogramAccumulator) Reset() {
	clear(h.counts)
	clear(h.sums)
	h.count = 0
}
