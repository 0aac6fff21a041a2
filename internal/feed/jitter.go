// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

// DeterministicJitter derives a stable pseudo-random value in
// [-amplitude, +amplitude] purely from the seed string. It breaks ties
// among near-identical scores without introducing nondeterminism: the same
// seed always yields the same jitter, independent of wall-clock time.
//
// The seed is folded with a 31-multiplier rolling hash over its bytes,
// reduced modulo 1000, and rescaled into the amplitude range.
func DeterministicJitter(seed string, amplitude float64) float64 {
	if amplitude == 0 {
		return 0
	}

	var h uint32
	for i := 0; i < len(seed); i++ {
		h = h*31 + uint32(seed[i])
	}

	frac := float64(h%1000) / 999.0
	return -amplitude + 2*amplitude*frac
}
