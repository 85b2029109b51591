// Package mask provides morphological cleanup of per-sample boolean masks.
//
// A mask marks candidate samples during zone detection. Real traces produce
// ragged masks: a few noisy samples punch holes into an otherwise stable
// region, and short bursts of calm form islands inside a transition. Clean
// repairs both with two independent forward sweeps over run-length regions:
//
//   - hole filling: a false run of length <= maxHole immediately following a
//     true run is flipped to true, merging the runs it separates;
//   - island removal: a true run of length <= maxIsland is flipped to false.
//
// Hole filling runs strictly before island removal, on the raw mask; island
// removal then operates on the hole-filled result. Each pass is a single
// left-to-right sweep and is not applied to a fixed point, so Clean is not
// idempotent in general (see the package tests for the accepted behavior).
package mask

// Clean returns a cleaned copy of mask. The input is never modified.
//
// maxHole and maxIsland <= 0 disable the respective pass. The whole operation
// is O(len(mask)).
func Clean(mask []bool, maxHole, maxIsland int) []bool {
	out := make([]bool, len(mask))
	copy(out, mask)

	if maxHole > 0 {
		fillHoles(out, maxHole)
	}

	if maxIsland > 0 {
		removeIslands(out, maxIsland)
	}

	return out
}

// fillHoles flips every false run of length <= maxHole that directly follows
// a true run. A single forward sweep: a filled hole is not revisited as part
// of a new true run within the same pass.
func fillHoles(mask []bool, maxHole int) {
	n := len(mask)

	i := 0
	for i < n {
		if !mask[i] {
			i++
			continue
		}

		// End of the current true run.
		j := i
		for j < n && mask[j] {
			j++
		}

		// Extent of the false run that follows it.
		k := j
		for k < n && !mask[k] {
			k++
		}

		if k-j <= maxHole {
			for p := j; p < k; p++ {
				mask[p] = true
			}
		}

		i = k
	}
}

// removeIslands flips every true run of length <= maxIsland.
func removeIslands(mask []bool, maxIsland int) {
	n := len(mask)

	i := 0
	for i < n {
		if !mask[i] {
			i++
			continue
		}

		j := i
		for j < n && mask[j] {
			j++
		}

		if j-i <= maxIsland {
			for p := i; p < j; p++ {
				mask[p] = false
			}
		}

		i = j
	}
}
