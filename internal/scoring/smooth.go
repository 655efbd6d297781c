package scoring

// DefaultWindow is the trailing window used for per-word curves.
const DefaultWindow = 7

// MovingAverage computes a causal rolling mean. The first window-1 points
// average over the history available so far.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	count := 0
	for i, v := range values {
		sum += v
		count++
		if count > window {
			sum -= values[i-window]
			count--
		}
		out[i] = sum / float64(count)
	}
	return out
}
