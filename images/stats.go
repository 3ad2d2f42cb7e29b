package images

import (
	"gonum.org/v1/gonum/stat"
)

// ChannelStats summarizes one color channel.
type ChannelStats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
	Min    uint8   `json:"min" yaml:"min"`
	Max    uint8   `json:"max" yaml:"max"`
}

// Stats computes per-channel mean, standard deviation and range.
//
// Arguments:
// - img: The image to summarize.
//
// Returns:
// - One ChannelStats per channel in R, G, B order. An empty image yields zero values.
func Stats(img *Image) [Channels]ChannelStats {
	var out [Channels]ChannelStats
	n := img.Width * img.Height
	if n == 0 {
		return out
	}

	samples := make([]float64, n)
	for c := 0; c < Channels; c++ {
		lo, hi := uint8(255), uint8(0)
		for i := 0; i < n; i++ {
			v := img.Data[i*Channels+c]
			samples[i] = float64(v)
			lo = min(lo, v)
			hi = max(hi, v)
		}
		mean, std := stat.MeanStdDev(samples, nil)
		out[c] = ChannelStats{Mean: mean, StdDev: std, Min: lo, Max: hi}
	}
	return out
}
