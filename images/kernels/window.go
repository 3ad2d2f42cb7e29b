package kernels

// Slide walks positions 0..n-1 of a line with a window of the given radius,
// clamped to the line: the window at x is [max(0, x-r), min(n-1, x+r)].
//
// The window is primed over [0, min(r, n-1)] and then moved one position at a
// time; each move removes at most the sample that left on the left and adds at
// most the one that entered on the right, so the whole walk costs O(n)
// regardless of radius.
//
// Arguments:
// - n: The line length.
// - radius: The window radius; negative values act as 0.
// - add: Called when sample i enters the window.
// - remove: Called when sample i leaves the window.
// - emit: Called once per position with the current window bounds (inclusive).
func Slide(n, radius int, add, remove func(i int), emit func(pos, lo, hi int)) {
	if n <= 0 {
		return
	}
	r := min(max(radius, 0), n)

	lo, hi := 0, min(r, n-1)
	for i := lo; i <= hi; i++ {
		add(i)
	}
	emit(0, lo, hi)

	for x := 1; x < n; x++ {
		if out := x - r - 1; out >= 0 {
			remove(out)
			lo = out + 1
		}
		if in := x + r; in <= n-1 {
			add(in)
			hi = in
		}
		emit(x, lo, hi)
	}
}

// windowSpan returns the number of samples in the clamped window at x.
func windowSpan(x, n, radius int) int {
	r := min(max(radius, 0), n)
	return min(n-1, x+r) - max(0, x-r) + 1
}
