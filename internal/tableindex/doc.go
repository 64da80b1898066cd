// Package tableindex assigns global parameter-server table ids. Sparse ids
// are handed out in first-seen order across all programs starting at zero;
// dense ids continue from the end of the sparse range through a monotonic
// allocator. Identical inputs always produce identical assignments, which is
// what makes repeated resolutions reproducible.
package tableindex
