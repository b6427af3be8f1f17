// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "sort"

// weightedSample is one valid-member student's rounded category value,
// used by the standalone class-level reporting helpers (spec §4.7 last
// paragraph, §4.8 step 8).
type weightedSample struct {
	value  float64
	weight float64
}

// WeightedMedian computes the classical weighted median of values, each
// carrying an equal weight of 1 — used for the per-category class
// summary. Averages at the exact-half cumulative point, per spec §4.7.
func WeightedMedian(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	samples := make([]weightedSample, len(values))
	for i, v := range values {
		samples[i] = weightedSample{value: v, weight: 1}
	}
	return weightedMedian(samples)
}

func weightedMedian(samples []weightedSample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].value < samples[j].value })

	var total float64
	for _, s := range samples {
		total += s.weight
	}
	if total <= 0 {
		return 0, false
	}

	half := total / 2
	var cum float64
	for i, s := range samples {
		cum += s.weight
		if almostEqual(cum, half) {
			if i+1 < len(samples) {
				return (s.value + samples[i+1].value) / 2, true
			}
			return s.value, true
		}
		if cum > half {
			return s.value, true
		}
	}
	return samples[len(samples)-1].value, true
}

// WeightedMode computes the weighted mode of values by rounded-to-1-decimal
// buckets (BucketKey), breaking ties toward the higher bucket — used for
// the per-category class summary, per spec §4.7 last paragraph.
func WeightedMode(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	buckets := make(map[int]int)
	for _, v := range values {
		buckets[BucketKey(v)]++
	}

	bestKey := 0
	bestCount := -1
	for k, count := range buckets {
		if count > bestCount || (count == bestCount && k > bestKey) {
			bestCount = count
			bestKey = k
		}
	}

	return float64(bestKey) / 10, true
}
