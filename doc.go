// Package gridstar provides an incremental A* pathfinder for 2D tile grids.
//
// A Pathfinder holds one grid and any number of queued path requests. Each
// call to Calculate spends a fixed budget of node expansions on the request
// at the head of the queue, so long searches can be spread across the ticks
// of a game or simulation loop:
//
//   - FindPath: queue a request and get a handle.
//   - Calculate: advance the queue by up to IterationsPerCalculation expansions.
//   - CancelPath: drop a request; its callback is never invoked.
//
// Movement costs are per tile type, optionally overridden per cell. Cells can
// be avoided outright or restricted to entry from given bearings, and
// diagonal movement can be enabled with or without corner cutting.
//
// Outside sync mode results are queued and delivered by the next Calculate
// (or Flush), so callbacks never run inside the call that produced them. In
// sync mode Calculate runs every queued search to completion and invokes
// callbacks immediately.
//
// A Pathfinder is single-threaded by design; drive it from one goroutine.
package gridstar
