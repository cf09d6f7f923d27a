package distribution

import (
	"math"
	"testing"
)

func TestWeightedShare(t *testing.T) {
	cases := map[string]struct {
		pool   uint64
		weight uint64
		basis  uint64
		want   uint64
	}{
		"zero weight": {
			pool: 1000, weight: 0, basis: 10000, want: 0,
		},
		"proportional": {
			pool: 1000, weight: 8600, basis: 10000, want: 860,
		},
		"floor rounding": {
			pool: 10, weight: 1, basis: 3, want: 3,
		},
		"full weight": {
			pool: 1000, weight: 10000, basis: 10000, want: 1000,
		},
		"scaled units": {
			pool: 1000, weight: 8_600_000_000, basis: 10_000_000_000, want: 860,
		},
		"product overflows 64 bits": {
			pool:   math.MaxUint64 / 2,
			weight: 1 << 40,
			basis:  1 << 41,
			want:   math.MaxUint64 / 4,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := weightedShare(tc.pool, tc.weight, tc.basis); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}
