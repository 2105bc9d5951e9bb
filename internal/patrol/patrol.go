// Package patrol simulates a guard walking a grid of obstacles and searches
// for single obstructions that trap the guard in a loop.
//
// The guard walks straight ahead, turns a quarter clockwise when the next
// cell is an obstacle and leaves when the next cell is off the grid. A run
// ends either by leaving (Exited) or by repeating a (position, facing) pair
// (Looping); the latter means the guard would walk forever.
package patrol

import "context"

// CountGuardPath loads the grid at path and returns how many distinct cells
// the guard visits before leaving, or 0 if it never leaves.
func CountGuardPath(path string) (int, error) {
	grid, guard, err := LoadGrid(path)
	if err != nil {
		return 0, err
	}
	return Simulate(grid, guard).Itinerary.Distinct(), nil
}

// CountGuardBlockingPossibilities loads the grid at path and returns how many
// cells would trap the guard in a loop if one obstacle were added there.
func CountGuardBlockingPossibilities(ctx context.Context, path string, opts ...SearchOption) (int, error) {
	grid, guard, err := LoadGrid(path)
	if err != nil {
		return 0, err
	}
	return len(FindBlockingObstructions(ctx, grid, guard, opts...)), nil
}
