package sim

import (
	"hash/fnv"
	"math"
)

// smoothNoise maps an integer-ish seed to a pseudo-random value in [0,1).
// It is a pure sin-hash: frac(|sin(seed*127.1 + 311.7) * 43758.5453|).
// The same seed always yields the same value, so every derived entity can
// be regenerated identically on every request without any stored state.
// The abs-before-frac step matters: it keeps negative seeds in range and
// fixes the bucket boundaries everything downstream depends on.
func smoothNoise(seed float64) float64 {
	v := math.Abs(math.Sin(seed*127.1+311.7) * 43758.5453)
	return v - math.Floor(v)
}

// randIndex picks a stable index in [0, length) for the given seed.
func randIndex(seed float64, length int) int {
	if length <= 0 {
		return 0
	}
	idx := int(math.Floor(smoothNoise(seed) * float64(length)))
	if idx >= length {
		idx = length - 1
	}
	return idx
}

// fieldMultipliers decorrelates attributes generated from the same base
// index: each field tag owns a distinct odd multiplier so that, e.g., a
// job's tenant and model don't move in lockstep as the index increments.
var fieldMultipliers = map[string]int{
	"tenant":   13,
	"gpu":      17,
	"model":    23,
	"alert":    29,
	"dc":       31,
	"ack":      37,
	"priority": 41,
	"status":   43,
	"age":      47,
	"duration": 53,
	"cost":     59,
	"variant":  61,
	"severity": 67,
	"count":    71,
	"level":    73,
	"usage":    79,
	"depth":    83,
	"gputype":  89,
	"offset":   97,
	"span":     101,
	"queue":    103,
	"error":    7919,
	"maint":    104729,
}

// fieldSeed derives the noise seed for field tag of entity baseIndex.
// Unknown tags hash to a derived odd multiplier so adding a field can
// never silently collide with an existing one.
func fieldSeed(baseIndex int, tag string) float64 {
	m, ok := fieldMultipliers[tag]
	if !ok {
		h := fnv.New32a()
		h.Write([]byte(tag))
		m = int(h.Sum32()%100000)*2 + 1
	}
	return float64(baseIndex * m)
}

// fieldNoise is the common smoothNoise(fieldSeed(...)) composition.
func fieldNoise(baseIndex int, tag string) float64 {
	return smoothNoise(fieldSeed(baseIndex, tag))
}

// dailyPattern models a daily load cycle as a fraction in roughly
// [0.30, 0.90]: low overnight, ramp 4-8h, busy plateau 8-18h with a
// sinusoidal ripple peaking early afternoon, decline 18-24h.
func dailyPattern(hour float64) float64 {
	switch {
	case hour < 0:
		return 0.30
	case hour < 4:
		return 0.30 + 0.02*math.Sin(hour*math.Pi/4)
	case hour < 8:
		return 0.32 + (hour-4)/4*0.43
	case hour < 18:
		return 0.75 + 0.15*math.Sin((hour-8)*math.Pi/10)
	case hour <= 24:
		return 0.75 - (hour-18)/6*0.45
	default:
		return 0.30
	}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// timeBucket floors a millisecond timestamp into bucketMs-wide buckets.
// Fault rolls keyed on a bucket stay stable for the bucket's duration,
// which is what makes a synthesized GPU fault look persistent instead of
// flickering on every poll.
func timeBucket(nowMs int64, bucketMs int64) float64 {
	return float64(nowMs / bucketMs)
}
