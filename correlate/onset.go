package correlate

// DetectOnsets is a public sub-capability of the alignment engine:
// given a spectral-flux sequence, a threshold, and a local window size
// W, it returns the indices of accepted onsets. An index i is accepted
// when it:
//
//  1. exceeds threshold;
//  2. exceeds the local mean (over [i-W/2, i+W/2]) plus threshold;
//  3. is a strict local maximum within [i-W/2, i+W/2];
//  4. keeps a minimum spacing of W/2 from any previously accepted
//     onset — when two candidates fall within that spacing, the
//     stronger (larger flux value) one wins.
func DetectOnsets(flux []float64, threshold float64, windowSize int) []int {
	if windowSize < 1 {
		windowSize = 1
	}
	half := windowSize / 2
	minSpacing := windowSize / 2

	var accepted []int
	for i := range flux {
		if !isCandidate(flux, i, threshold, half) {
			continue
		}

		if len(accepted) > 0 {
			last := accepted[len(accepted)-1]
			if i-last < minSpacing {
				if flux[i] > flux[last] {
					accepted[len(accepted)-1] = i
				}
				continue
			}
		}
		accepted = append(accepted, i)
	}
	return accepted
}

func isCandidate(flux []float64, i int, threshold float64, half int) bool {
	v := flux[i]
	if v <= threshold {
		return false
	}

	lo := i - half
	if lo < 0 {
		lo = 0
	}
	hi := i + half
	if hi >= len(flux) {
		hi = len(flux) - 1
	}

	var sum float64
	for j := lo; j <= hi; j++ {
		sum += flux[j]
	}
	localMean := sum / float64(hi-lo+1)
	if v <= localMean+threshold {
		return false
	}

	for j := lo; j <= hi; j++ {
		if j == i {
			continue
		}
		if flux[j] >= v {
			return false
		}
	}
	return true
}
